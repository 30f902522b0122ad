package ashpartition

import (
	"time"

	"github.com/Borislavv/go-ash-partition/internal/engine"
	"github.com/Borislavv/go-ash-partition/internal/estimator"
	"github.com/Borislavv/go-ash-partition/internal/shared/codec"
	"github.com/benbjohnson/clock"
)

type (
	Option    = engine.Option
	SetOption = engine.SetOption

	// Estimator measures cached values in bytes.
	Estimator = estimator.Estimator

	// Compressor turns values into their stored form and back.
	Compressor = codec.Compressor
)

var (
	ErrTenantNotConfigured = engine.ErrTenantNotConfigured
	ErrInvalidTenantConfig = engine.ErrInvalidTenantConfig
	ErrUnsupportedPolicy   = engine.ErrUnsupportedPolicy
	ErrJobNotFound         = engine.ErrJobNotFound
	ErrJobTerminal         = engine.ErrJobTerminal
)

func WithClock(clk clock.Clock) Option     { return engine.WithClock(clk) }
func WithSizeEstimator(e Estimator) Option { return engine.WithSizeEstimator(e) }
func WithCompressor(c Compressor) Option   { return engine.WithCompressor(c) }
func WithTTL(ttl time.Duration) SetOption  { return engine.WithTTL(ttl) }
func WithTags(tags ...string) SetOption    { return engine.WithTags(tags...) }
