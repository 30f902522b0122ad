package engine

import (
	"time"

	"github.com/Borislavv/go-ash-partition/internal/partition"
	"github.com/Borislavv/go-ash-partition/model"
)

type setOptions struct {
	ttl  *time.Duration
	tags []string
}

type SetOption func(*setOptions)

// WithTTL overrides the tenant default TTL. Zero is allowed and expires the entry
// as soon as any time passes.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) { o.ttl = &ttl }
}

// WithTags labels the entry for DeleteByTag.
func WithTags(tags ...string) SetOption {
	return func(o *setOptions) { o.tags = append(o.tags, tags...) }
}

// Set stores value under key. When the key is new and the partition is at its
// quota, exactly one victim chosen by the tenant policy is evicted first.
func (e *Engine) Set(tenantID, namespace, key string, value any, opts ...SetOption) (model.Entry, error) {
	start := e.clock.Now()
	namespace = namespaceOf(namespace)
	p, err := e.partition(tenantID, namespace)
	if err != nil {
		return model.Entry{}, err
	}

	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}

	stored := e.encode(p, tenantID, namespace, key, value)
	size, fallback := e.sizer.Size(stored)
	if fallback {
		e.fallbackLog.Do(func() {
			e.logger.Debug().
				Str("tenant_id", tenantID).
				Str("namespace", namespace).
				Str("key", key).
				Int64("fallback_bytes", size).
				Msg("value size is not measurable, fallback size used")
		})
	}

	res := p.Set(partition.Write{Key: key, Value: stored, SizeBytes: size, TTL: o.ttl, Tags: o.tags})
	res.Entry.Value = value

	now := e.clock.Now()
	if res.Evicted != nil {
		e.onEvict(tenantID, namespace, res.Evicted, now)
	}
	e.record(model.Operation{
		Type:      model.OpSet,
		TenantID:  tenantID,
		Namespace: namespace,
		Key:       key,
		Latency:   now.Sub(start),
		SizeBytes: size,
		Timestamp: now,
	})
	return res.Entry, nil
}

// Get returns a live entry. Expired and corrupted entries are removed and reported as a miss.
func (e *Engine) Get(tenantID, namespace, key string) (model.Entry, bool, error) {
	start := e.clock.Now()
	namespace = namespaceOf(namespace)
	p, err := e.partition(tenantID, namespace)
	if err != nil {
		return model.Entry{}, false, err
	}

	var decode partition.Decoder
	if e.compressor != nil {
		decode = e.compressor.Decompress
	}

	entry, lookup := p.Get(key, decode)
	if lookup == partition.Corrupted {
		e.logger.Error().
			Str("tenant_id", tenantID).
			Str("namespace", namespace).
			Str("key", key).
			Msg("stored value cannot be decoded, entry dropped and partition degraded")
	}

	hit := lookup == partition.Hit
	now := e.clock.Now()
	op := model.Operation{
		Type:      model.OpGet,
		TenantID:  tenantID,
		Namespace: namespace,
		Key:       key,
		Hit:       hit,
		Latency:   now.Sub(start),
		Timestamp: now,
	}
	if hit {
		op.SizeBytes = entry.SizeBytes
	}
	e.record(op)

	if !hit {
		return model.Entry{}, false, nil
	}
	return entry, true, nil
}

// Delete removes key and reports whether it was present.
func (e *Engine) Delete(tenantID, namespace, key string) (bool, error) {
	start := e.clock.Now()
	namespace = namespaceOf(namespace)
	p, err := e.partition(tenantID, namespace)
	if err != nil {
		return false, err
	}

	removed, ok := p.Delete(key)
	now := e.clock.Now()
	e.record(model.Operation{
		Type:      model.OpDelete,
		TenantID:  tenantID,
		Namespace: namespace,
		Key:       key,
		Hit:       ok,
		Latency:   now.Sub(start),
		SizeBytes: removed.SizeBytes,
		Timestamp: now,
	})
	return ok, nil
}

// DeleteByTag removes every entry labeled with tag and returns how many were removed.
func (e *Engine) DeleteByTag(tenantID, namespace, tag string) (int, error) {
	start := e.clock.Now()
	namespace = namespaceOf(namespace)
	p, err := e.partition(tenantID, namespace)
	if err != nil {
		return 0, err
	}

	removed := p.DeleteByTag(tag)
	now := e.clock.Now()
	for _, entry := range removed {
		e.record(model.Operation{
			Type:      model.OpDelete,
			TenantID:  tenantID,
			Namespace: namespace,
			Key:       entry.Key,
			Hit:       true,
			Latency:   now.Sub(start),
			SizeBytes: entry.SizeBytes,
			Timestamp: now,
		})
	}
	return len(removed), nil
}

// Flush drops every entry of the partition and zeroes its metrics.
func (e *Engine) Flush(tenantID, namespace string) error {
	start := e.clock.Now()
	namespace = namespaceOf(namespace)
	p, err := e.partition(tenantID, namespace)
	if err != nil {
		return err
	}

	removed := p.Flush()
	now := e.clock.Now()
	e.record(model.Operation{
		Type:      model.OpFlush,
		TenantID:  tenantID,
		Namespace: namespace,
		Latency:   now.Sub(start),
		Timestamp: now,
	})
	e.logger.Info().
		Str("tenant_id", tenantID).
		Str("namespace", namespace).
		Int("removed", removed).
		Msg("partition flushed")
	return nil
}

func (e *Engine) onEvict(tenantID, namespace string, victim *model.Entry, now time.Time) {
	e.record(model.Operation{
		Type:      model.OpEvict,
		TenantID:  tenantID,
		Namespace: namespace,
		Key:       victim.Key,
		SizeBytes: victim.SizeBytes,
		Timestamp: now,
	})
	e.evictionLog.Do(func() {
		e.logger.Debug().
			Str("tenant_id", tenantID).
			Str("namespace", namespace).
			Str("key", victim.Key).
			Msg("entry evicted")
	})
}

// encode compresses value for tenants with compression enabled. A failing codec
// never fails the write, the value is stored as-is.
func (e *Engine) encode(p *partition.Partition, tenantID, namespace, key string, value any) any {
	if e.compressor == nil || !p.Config().CompressionEnabled {
		return value
	}
	stored, err := e.compressor.Compress(value)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("tenant_id", tenantID).
			Str("namespace", namespace).
			Str("key", key).
			Msg("compression failed, value stored uncompressed")
		return value
	}
	return stored
}
