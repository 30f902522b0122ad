// Package partition implements the store of one (tenant, namespace) pair.
//
// A Partition owns its entries, its eviction index and its metrics record and
// guards all three with one exclusive lock. Every exported method takes the lock
// for its whole duration, so the evict-then-insert sequence of Set is atomic and
// the partition never holds more than MaxEntries entries when a call returns.
package partition

import (
	"slices"
	"sync"
	"time"

	"github.com/Borislavv/go-ash-partition/internal/eviction"
	"github.com/Borislavv/go-ash-partition/internal/shared/bytes"
	"github.com/Borislavv/go-ash-partition/model"
	"github.com/benbjohnson/clock"
)

type record struct {
	model.Entry
	seq uint64 // partition-wide write sequence, breaks eviction ties
}

type Partition struct {
	mu sync.Mutex

	cfg     model.TenantConfig
	clock   clock.Clock
	entries map[string]*record
	index   *eviction.Index
	metrics model.Metrics
	seq     uint64
}

// New creates an empty partition. cfg must be validated by the caller,
// only the eviction policy is checked again here.
func New(cfg model.TenantConfig, clk clock.Clock) (*Partition, error) {
	index, err := eviction.NewIndex(cfg.EvictionPolicy)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.New()
	}
	p := &Partition{
		cfg:     cfg,
		clock:   clk,
		entries: make(map[string]*record),
		index:   index,
	}
	p.resetMetricsUnlocked()
	return p, nil
}

// Reconfigure replaces the mutable part of the config. Entries are preserved and an
// over-quota partition is not shrunk here: the next Set evicts one victim.
func (p *Partition) Reconfigure(cfg model.TenantConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cfg.EvictionPolicy != p.index.Policy() {
		if err := p.index.SetPolicy(cfg.EvictionPolicy, p.itemsUnlocked()); err != nil {
			return err
		}
	}
	cfg.TenantID, cfg.Namespace = p.cfg.TenantID, p.cfg.Namespace
	p.cfg = cfg
	p.refreshStatusUnlocked(false)
	return nil
}

func (p *Partition) Config() model.TenantConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

func (p *Partition) Metrics() model.Metrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metrics
}

func (p *Partition) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Write is the input of Set. A nil TTL means the tenant default.
type Write struct {
	Key       string
	Value     any
	SizeBytes int64
	TTL       *time.Duration
	Tags      []string
}

// SetResult reports the stored entry and the victim evicted to make room, if any.
type SetResult struct {
	Entry   model.Entry
	Evicted *model.Entry
}

// Set inserts or overwrites an entry. A new key arriving at a full partition
// evicts exactly one victim first. An overwrite never evicts.
func (p *Partition) Set(w Write) SetResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	var res SetResult
	now := p.clock.Now()

	ttl := p.cfg.DefaultTTL
	if w.TTL != nil {
		ttl = *w.TTL
	}

	rec, exists := p.entries[w.Key]
	if !exists && len(p.entries) >= p.cfg.MaxEntries {
		if victim, ok := p.index.Victim(); ok {
			evicted := p.removeUnlocked(victim)
			p.metrics.EvictionCount++
			res.Evicted = &evicted
		}
	}

	p.seq++
	if exists {
		rec.Version++
	} else {
		rec = &record{Entry: model.Entry{Key: w.Key, Version: 1}}
		p.entries[w.Key] = rec
	}
	rec.seq = p.seq
	rec.Value = w.Value
	rec.TTL = ttl
	rec.CreatedAt = now
	rec.ExpiresAt = now.Add(ttl)
	rec.AccessCount = 0
	rec.LastAccessAt = now
	rec.SizeBytes = w.SizeBytes
	rec.Tags = uniqueTags(w.Tags)

	p.index.OnWrite(itemOf(rec))

	p.recalcSizeUnlocked(now)
	p.refreshStatusUnlocked(true)

	res.Entry = rec.Clone()
	return res
}

// Lookup is the outcome of Get.
type Lookup int

const (
	Miss Lookup = iota
	Hit
	Expired
	Corrupted
)

// Decoder turns a stored value back into what the caller had set.
type Decoder func(stored any) (any, error)

// Get returns a live entry. An entry found past its ExpiresAt is removed and
// reported as Expired, which counts as a miss. decode may be nil; when it fails the
// entry is dropped, counted as a miss and the partition is marked degraded.
func (p *Partition) Get(key string, decode Decoder) (model.Entry, Lookup) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	defer p.metrics.RecalcHitRate()

	rec, ok := p.entries[key]
	if !ok {
		p.metrics.MissCount++
		p.metrics.UpdatedAt = now
		return model.Entry{}, Miss
	}

	if rec.IsExpired(now) {
		expired := p.removeUnlocked(key)
		p.metrics.ExpiredCount++
		p.metrics.MissCount++
		p.recalcSizeUnlocked(now)
		p.refreshStatusUnlocked(false)
		return expired, Expired
	}

	out := rec.Clone()
	if decode != nil {
		value, err := decode(rec.Value)
		if err != nil {
			p.removeUnlocked(key)
			p.metrics.MissCount++
			p.recalcSizeUnlocked(now)
			p.metrics.Status = model.StatusDegraded
			return out, Corrupted
		}
		out.Value = value
	}

	rec.AccessCount++
	rec.LastAccessAt = now
	p.index.OnAccess(key)
	p.metrics.HitCount++
	p.metrics.UpdatedAt = now

	out.AccessCount = rec.AccessCount
	out.LastAccessAt = rec.LastAccessAt
	return out, Hit
}

// Delete removes one key and reports whether it existed.
func (p *Partition) Delete(key string) (model.Entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.entries[key]; !ok {
		return model.Entry{}, false
	}
	removed := p.removeUnlocked(key)
	p.recalcSizeUnlocked(p.clock.Now())
	p.refreshStatusUnlocked(false)
	return removed, true
}

// DeleteByTag removes exactly the entries labeled with tag.
func (p *Partition) DeleteByTag(tag string) []model.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	var removed []model.Entry
	for key, rec := range p.entries {
		if rec.HasTag(tag) {
			removed = append(removed, p.removeUnlocked(key))
		}
	}
	if len(removed) > 0 {
		p.recalcSizeUnlocked(p.clock.Now())
		p.refreshStatusUnlocked(false)
	}
	return removed
}

// Flush drops every entry and resets metrics to zero. Unlike eviction this is a hard reset.
func (p *Partition) Flush() (removed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	removed = len(p.entries)
	p.entries = make(map[string]*record)
	p.index.Reset()
	p.resetMetricsUnlocked()
	return removed
}

// Expire removes every entry whose ExpiresAt has passed.
func (p *Partition) Expire() (expired int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	for key, rec := range p.entries {
		if rec.IsExpired(now) {
			p.removeUnlocked(key)
			expired++
		}
	}
	if expired > 0 {
		p.metrics.ExpiredCount += int64(expired)
		p.recalcSizeUnlocked(now)
		p.refreshStatusUnlocked(false)
	}
	return expired
}

// MarkWarming flags a running warming job. Degraded and disabled partitions keep their status.
func (p *Partition) MarkWarming() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.metrics.Status == model.StatusHealthy || p.metrics.Status == model.StatusFull {
		p.metrics.Status = model.StatusWarming
	}
}

// FinishWarming restores the occupancy status after a warming job ended.
func (p *Partition) FinishWarming() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.metrics.Status == model.StatusWarming {
		p.refreshStatusUnlocked(true)
	}
}

func (p *Partition) removeUnlocked(key string) model.Entry {
	rec := p.entries[key]
	delete(p.entries, key)
	p.index.OnRemove(key)
	p.metrics.TotalEntries = int64(len(p.entries))
	return rec.Entry
}

// recalcSizeUnlocked sums live entries instead of applying deltas.
func (p *Partition) recalcSizeUnlocked(now time.Time) {
	var total int64
	for _, rec := range p.entries {
		total += rec.SizeBytes
	}
	p.metrics.TotalEntries = int64(len(p.entries))
	p.metrics.TotalSizeBytes = total
	p.metrics.PeakMemoryMB = max(p.metrics.PeakMemoryMB, bytes.ToMB(total))
	p.metrics.UpdatedAt = now
}

// refreshStatusUnlocked derives full/healthy from occupancy. Without force, a
// warming or degraded status is left alone.
func (p *Partition) refreshStatusUnlocked(force bool) {
	switch p.metrics.Status {
	case model.StatusHealthy, model.StatusFull:
	default:
		if !force {
			return
		}
	}
	if len(p.entries) >= p.cfg.MaxEntries {
		p.metrics.Status = model.StatusFull
	} else {
		p.metrics.Status = model.StatusHealthy
	}
}

func (p *Partition) resetMetricsUnlocked() {
	p.metrics = model.Metrics{
		TenantID:  p.cfg.TenantID,
		Namespace: p.cfg.Namespace,
		Status:    model.StatusHealthy,
		UpdatedAt: p.clock.Now(),
	}
}

func (p *Partition) itemsUnlocked() []eviction.Item {
	items := make([]eviction.Item, 0, len(p.entries))
	for _, rec := range p.entries {
		items = append(items, itemOf(rec))
	}
	return items
}

func itemOf(rec *record) eviction.Item {
	return eviction.Item{Key: rec.Key, Seq: rec.seq, CreatedAt: rec.CreatedAt, ExpiresAt: rec.ExpiresAt}
}

func uniqueTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
