// Package engine is the call surface of the partitioner: it resolves the
// (tenant, namespace) partition of every call, measures and compresses values,
// records operations and keeps warming bookkeeping.
package engine

import (
	"time"

	"github.com/Borislavv/go-ash-partition/config"
	"github.com/Borislavv/go-ash-partition/internal/estimator"
	"github.com/Borislavv/go-ash-partition/internal/oplog"
	"github.com/Borislavv/go-ash-partition/internal/registry"
	"github.com/Borislavv/go-ash-partition/internal/shared/codec"
	"github.com/Borislavv/go-ash-partition/internal/summary"
	"github.com/Borislavv/go-ash-partition/internal/warming"
	"github.com/Borislavv/go-ash-partition/model"
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const sampledLogInterval = time.Second

type Option func(*Engine)

// WithClock replaces the wall clock. Every timestamp and TTL decision uses it.
func WithClock(clk clock.Clock) Option {
	return func(e *Engine) { e.clock = clk }
}

// WithSizeEstimator replaces the JSON based value size estimator.
func WithSizeEstimator(est estimator.Estimator) Option {
	return func(e *Engine) { e.estimator = est }
}

// WithCompressor replaces the configured s2 codec. A nil compressor stores values as-is.
func WithCompressor(c codec.Compressor) Option {
	return func(e *Engine) {
		e.compressor = c
		e.compressorSet = true
	}
}

type Engine struct {
	cfg    *config.Config
	logger zerolog.Logger
	clock  clock.Clock

	estimator     estimator.Estimator
	sizer         *estimator.WithFallback
	compressor    codec.Compressor
	compressorSet bool

	partitions *registry.Registry
	oplog      *oplog.Ring
	warming    *warming.Tracker
	summary    *summary.Aggregator

	evictionLog rate.Sometimes
	fallbackLog rate.Sometimes
}

func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.Default()
	} else {
		cfg.AdjustConfig()
	}
	e := &Engine{
		cfg:         cfg,
		logger:      logger.With().Str("component", "engine").Logger(),
		clock:       clock.New(),
		estimator:   estimator.JSON{},
		partitions:  registry.New(),
		oplog:       oplog.New(cfg.OperationLog.Capacity),
		evictionLog: rate.Sometimes{Interval: sampledLogInterval},
		fallbackLog: rate.Sometimes{Interval: sampledLogInterval},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = clock.New()
	}
	if !e.compressorSet && cfg.Compression.Enabled() {
		e.compressor = codec.NewS2(cfg.Compression)
	}
	e.sizer = estimator.NewWithFallback(e.estimator, cfg.Estimator.FallbackBytes)
	e.warming = warming.NewTracker(e.clock, cfg.Warming.MaxJobs)
	e.summary = summary.NewAggregator(e.ListAllMetrics, e.clock)
	return e
}

// Clock returns the clock the engine runs on.
func (e *Engine) Clock() clock.Clock { return e.clock }

func (e *Engine) record(op model.Operation) {
	e.oplog.Append(op)
}

func namespaceOf(namespace string) string {
	if namespace == "" {
		return model.DefaultNamespace
	}
	return namespace
}
