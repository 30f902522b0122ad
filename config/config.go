package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultOperationLogCapacity = 20_000
	defaultFallbackSizeBytes    = 128
	defaultMaxWarmingJobs       = 10_000
)

// Config groups configuration of the engine and its background workers.
// Optional components are disabled by leaving their section nil.
type Config struct {
	OperationLog OperationLogCfg `yaml:"operation_log"`
	Estimator    EstimatorCfg    `yaml:"estimator"`
	Warming      WarmingCfg      `yaml:"warming"`

	// Expiration configures the background sweeper which reclaims expired entries
	// nobody reads anymore. If nil, expiration is discovered lazily on Get only
	// unless the host calls RunExpiration itself.
	Expiration *ExpirationCfg `yaml:"expiration"`

	// Telemetry configures periodic summary logs. If nil, nothing is logged periodically.
	Telemetry *TelemetryCfg `yaml:"telemetry"`

	// Compression configures the codec used for tenants with compression enabled.
	// If nil, values of such tenants are stored as-is.
	Compression *CompressionCfg `yaml:"compression"`

	// Tenants are configured when the partitioner starts.
	Tenants []TenantCfg `yaml:"tenants"`
}

func (cfg *Config) AdjustConfig() {
	if cfg.OperationLog.Capacity <= 0 {
		cfg.OperationLog.Capacity = defaultOperationLogCapacity
	}
	if cfg.Estimator.FallbackBytes <= 0 {
		cfg.Estimator.FallbackBytes = defaultFallbackSizeBytes
	}
	if cfg.Warming.MaxJobs <= 0 {
		cfg.Warming.MaxJobs = defaultMaxWarmingJobs
	}

	if cfg.Expiration.Enabled() {
		if cfg.Expiration.Interval <= 0 {
			cfg.Expiration.Interval = defaultExpirationInterval
		}
		if cfg.Expiration.Concurrency <= 0 {
			cfg.Expiration.Concurrency = 1
		}
	}

	if cfg.Telemetry.Enabled() && cfg.Telemetry.Interval <= 0 {
		cfg.Telemetry.Interval = defaultTelemetryInterval
	}

	if cfg.Compression.Enabled() {
		cfg.Compression.IsBest = cfg.Compression.Level == CompressionBest
		cfg.Compression.IsBetter = cfg.Compression.Level == CompressionBetter
	}
}

func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.AdjustConfig()

	return cfg, nil
}

// Default returns a config with every optional component disabled.
func Default() *Config {
	cfg := &Config{}
	cfg.AdjustConfig()
	return cfg
}
