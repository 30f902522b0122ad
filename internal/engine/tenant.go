package engine

import (
	"fmt"

	"github.com/Borislavv/go-ash-partition/internal/eviction"
	"github.com/Borislavv/go-ash-partition/internal/partition"
	"github.com/Borislavv/go-ash-partition/internal/registry"
	"github.com/Borislavv/go-ash-partition/model"
)

// ConfigureTenant creates or replaces the config of a partition. The first call
// creates the partition with empty metrics. Later calls keep entries and CreatedAt;
// a partition left over its new quota shrinks lazily, one eviction per Set.
func (e *Engine) ConfigureTenant(cfg model.TenantConfig) (model.TenantConfig, error) {
	cfg.Namespace = namespaceOf(cfg.Namespace)
	if cfg.EvictionPolicy == "" {
		cfg.EvictionPolicy = model.EvictionLRU
	}
	if cfg.WriteMode == "" {
		cfg.WriteMode = model.WriteAround
	}
	if err := validate(cfg); err != nil {
		return model.TenantConfig{}, tenantErr(err, "configure tenant", cfg.TenantID, cfg.Namespace)
	}

	now := e.clock.Now()
	key := registry.Key{TenantID: cfg.TenantID, Namespace: cfg.Namespace}
	p, created, err := e.partitions.GetOrCreate(key, func() (*partition.Partition, error) {
		cfg.CreatedAt, cfg.UpdatedAt = now, now
		return partition.New(cfg, e.clock)
	})
	if err != nil {
		return model.TenantConfig{}, tenantErr(err, "create partition", cfg.TenantID, cfg.Namespace)
	}

	if !created {
		prev := p.Config()
		cfg.CreatedAt, cfg.UpdatedAt = prev.CreatedAt, now
		if err = p.Reconfigure(cfg); err != nil {
			return model.TenantConfig{}, tenantErr(err, "reconfigure partition", cfg.TenantID, cfg.Namespace)
		}
	}

	e.logger.Info().
		Str("tenant_id", cfg.TenantID).
		Str("namespace", cfg.Namespace).
		Int("max_entries", cfg.MaxEntries).
		Str("policy", string(cfg.EvictionPolicy)).
		Bool("created", created).
		Msg("tenant configured")

	return cfg, nil
}

// TenantConfig returns the config a partition currently runs with.
func (e *Engine) TenantConfig(tenantID, namespace string) (model.TenantConfig, bool) {
	p, ok := e.partitions.Get(registry.Key{TenantID: tenantID, Namespace: namespaceOf(namespace)})
	if !ok {
		return model.TenantConfig{}, false
	}
	return p.Config(), true
}

func (e *Engine) partition(tenantID, namespace string) (*partition.Partition, error) {
	p, ok := e.partitions.Get(registry.Key{TenantID: tenantID, Namespace: namespace})
	if !ok {
		return nil, tenantErr(ErrTenantNotConfigured, "resolve partition", tenantID, namespace)
	}
	return p, nil
}

func validate(cfg model.TenantConfig) error {
	switch {
	case cfg.TenantID == "":
		return fmt.Errorf("%w: tenant id is empty", ErrInvalidTenantConfig)
	case cfg.MaxEntries <= 0:
		return fmt.Errorf("%w: max entries must be positive, got %d", ErrInvalidTenantConfig, cfg.MaxEntries)
	case cfg.MaxMemoryMB < 0:
		return fmt.Errorf("%w: max memory must not be negative, got %v", ErrInvalidTenantConfig, cfg.MaxMemoryMB)
	case cfg.DefaultTTL < 0:
		return fmt.Errorf("%w: default ttl must not be negative, got %s", ErrInvalidTenantConfig, cfg.DefaultTTL)
	case !cfg.WriteMode.Known():
		return fmt.Errorf("%w: unknown write mode %q", ErrInvalidTenantConfig, cfg.WriteMode)
	case !cfg.EvictionPolicy.Known():
		return fmt.Errorf("%w: %w", ErrInvalidTenantConfig, eviction.Validate(cfg.EvictionPolicy))
	}
	return eviction.Validate(cfg.EvictionPolicy)
}
