// Package telemetry periodically logs what the partitioner did during the last interval.
package telemetry

import (
	"context"
	"time"

	"github.com/Borislavv/go-ash-partition/config"
	"github.com/Borislavv/go-ash-partition/internal/shared/bytes"
	"github.com/Borislavv/go-ash-partition/internal/summary"
	"github.com/Borislavv/go-ash-partition/internal/sweeper"
	"github.com/Borislavv/go-ash-partition/model"
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

// Source exposes the partition metrics to log.
type Source interface {
	ListAllMetrics() []model.Metrics
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	logger   zerolog.Logger
	source   Source
	sweeper  sweeper.Sweeper
	clock    clock.Clock
	ticker   *clock.Ticker
	interval time.Duration
}

// New starts the logging loop. A nil cfg returns a Logs which never logs.
func New(
	ctx context.Context,
	cfg *config.TelemetryCfg,
	logger zerolog.Logger,
	source Source,
	sw sweeper.Sweeper,
	clk clock.Clock,
) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	if clk == nil {
		clk = clock.New()
	}
	if sw == nil {
		sw = sweeper.NoOpSweeper{}
	}
	l := &Logs{
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger.With().Str("component", "telemetry").Logger(),
		source:  source,
		sweeper: sw,
		clock:   clk,
	}
	if cfg.Enabled() {
		l.interval = cfg.Interval
	}
	return l.run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.interval > 0 {
		l.ticker = l.clock.Ticker(l.interval)
		go l.loop()
	}
	return l
}

func (l *Logs) loop() {
	defer l.ticker.Stop()

	_, sweeperOn := l.sweeper.(*sweeper.Worker)
	s := newSampler(l.sweeper)
	prev := s.snapshot(l.source.ListAllMetrics())

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-l.ticker.C:
			metrics := l.source.ListAllMetrics()
			cur := s.snapshot(metrics)
			d := deltaSnapshot(prev, cur)
			prev = cur

			if sweeperOn {
				l.logger.Info().
					Str("interval", l.interval.String()).
					Uint64("sweeps", d.sweeps).
					Uint64("removed", d.sweptEntries).
					Uint64("errors", d.sweepErrors).
					Msg("sweeper")
			}

			sum := summary.Build(metrics, l.clock.Now())
			l.logger.Info().
				Str("interval", l.interval.String()).
				Int("tenants", sum.TotalTenants).
				Int("partitions", sum.TotalPartitions).
				Int("full_partitions", sum.FullPartitions).
				Int64("entries", sum.TotalEntries).
				Str("size", bytes.FmtMem(sum.TotalSizeBytes)).
				Float64("avg_hit_rate_pct", sum.AvgHitRatePct).
				Uint64("hits", d.hits).
				Uint64("misses", d.misses).
				Uint64("evictions", d.evictions).
				Uint64("expired", d.expired).
				Msg("storage")
		}
	}
}
