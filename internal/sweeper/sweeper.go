// Package sweeper periodically reclaims expired entries nobody reads anymore.
package sweeper

import (
	"context"
	"errors"

	"github.com/Borislavv/go-ash-partition/config"
	"github.com/Borislavv/go-ash-partition/internal/shared/rate"
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

type Sweeper interface {
	Metrics() (sweeps, removed, errors int64)
	Close() error
}

// Expirer removes expired entries of every partition.
type Expirer interface {
	RunExpiration(ctx context.Context) (int, error)
}

type Worker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.ExpirationCfg
	logger   zerolog.Logger
	expirer  Expirer
	jitter   *rate.Jitter
	counters *sweeperCounters
	done     chan struct{}
}

func New(
	ctx context.Context,
	cfg *config.ExpirationCfg,
	logger zerolog.Logger,
	expirer Expirer,
	clk clock.Clock,
) Sweeper {
	if !cfg.Enabled() {
		return &NoOpSweeper{}
	}

	ctx, cancel := context.WithCancel(ctx)
	return (&Worker{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger.With().Str("component", "sweeper").Logger(),
		expirer:  expirer,
		jitter:   rate.NewJitter(ctx, 1, cfg.Interval, clk),
		counters: newSweeperCounters(),
		done:     make(chan struct{}),
	}).run()
}

func (w *Worker) Metrics() (sweeps, removed, errors int64) {
	return w.counters.snapshot()
}

// Close stops the worker and waits for the running sweep to return.
func (w *Worker) Close() error {
	w.cancel()
	<-w.done
	return nil
}

func (w *Worker) run() *Worker {
	w.logger.Info().
		Dur("interval", w.cfg.Interval).
		Int("concurrency", w.cfg.Concurrency).
		Msg("sweeper is running")

	go func() {
		defer close(w.done)
		defer w.logger.Info().Msg("sweeper is stopped")
		for {
			select {
			case <-w.ctx.Done():
				return
			case _, ok := <-w.jitter.Chan():
				if !ok {
					return
				}
				w.sweep()
			}
		}
	}()

	return w
}

func (w *Worker) sweep() {
	removed, err := w.expirer.RunExpiration(w.ctx)
	w.counters.removed.Add(int64(removed))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		w.counters.errors.Add(1)
		w.logger.Error().Err(err).Msg("expiration sweep failed")
		return
	}
	w.counters.sweeps.Add(1)
}
