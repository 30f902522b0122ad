package ashpartition

import (
	"context"
	"io"

	"github.com/Borislavv/go-ash-partition/config"
	"github.com/Borislavv/go-ash-partition/internal/engine"
	"github.com/Borislavv/go-ash-partition/internal/sweeper"
	"github.com/Borislavv/go-ash-partition/internal/telemetry"
	"github.com/rs/zerolog"
)

type AshPartition interface {
	sweeper.Sweeper
	telemetry.Logger
	io.Closer
}

// Partitioner is a multi-tenant cache. Every (tenant, namespace) pair is an
// isolated partition with its own quota, eviction policy and metrics.
type Partitioner struct {
	*engine.Engine
	sweeper.Sweeper
	telemetry.Logger
	cls context.CancelFunc
}

var _ AshPartition = (*Partitioner)(nil)

// New configures every tenant listed in cfg and starts the background workers
// enabled by cfg. A nil cfg runs without background workers.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Partitioner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.AdjustConfig()

	eng := engine.New(cfg, logger, opts...)
	for _, tenant := range cfg.Tenants {
		if _, err := eng.ConfigureTenant(tenant.TenantConfig()); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	expiration := sweeper.New(ctx, cfg.Expiration, logger, eng, eng.Clock())
	telemeter := telemetry.New(ctx, cfg.Telemetry, logger, eng, expiration, eng.Clock())
	return &Partitioner{cls: cancel, Engine: eng, Sweeper: expiration, Logger: telemeter}, nil
}

// Close stops the background workers. Data stays readable.
func (p *Partitioner) Close() error {
	p.cls()
	_ = p.Logger.Close()
	return p.Sweeper.Close()
}
