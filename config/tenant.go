package config

import (
	"time"

	"github.com/Borislavv/go-ash-partition/model"
)

// TenantCfg is the YAML form of model.TenantConfig.
// Leaving default_ttl out sets it to zero: entries written without an explicit
// TTL then expire as soon as any time has passed after the write.
type TenantCfg struct {
	TenantID           string        `yaml:"tenant_id"`
	Namespace          string        `yaml:"namespace"`
	MaxEntries         int           `yaml:"max_entries"`
	MaxMemoryMB        float64       `yaml:"max_memory_mb"`
	DefaultTTL         time.Duration `yaml:"default_ttl"`
	EvictionPolicy     string        `yaml:"eviction_policy"`
	WriteMode          string        `yaml:"write_mode"`
	WarmingEnabled     bool          `yaml:"warming_enabled"`
	CompressionEnabled bool          `yaml:"compression_enabled"`
	EncryptionEnabled  bool          `yaml:"encryption_enabled"`
}

func (cfg TenantCfg) TenantConfig() model.TenantConfig {
	return model.TenantConfig{
		TenantID:           cfg.TenantID,
		Namespace:          cfg.Namespace,
		MaxEntries:         cfg.MaxEntries,
		MaxMemoryMB:        cfg.MaxMemoryMB,
		DefaultTTL:         cfg.DefaultTTL,
		EvictionPolicy:     model.EvictionPolicy(cfg.EvictionPolicy),
		WriteMode:          model.WriteMode(cfg.WriteMode),
		WarmingEnabled:     cfg.WarmingEnabled,
		CompressionEnabled: cfg.CompressionEnabled,
		EncryptionEnabled:  cfg.EncryptionEnabled,
	}
}
