package config

import "time"

const defaultExpirationInterval = time.Second

type ExpirationCfg struct {
	// Interval between two global expiration sweeps.
	// Example: "1s".
	Interval time.Duration `yaml:"interval"`

	// Concurrency bounds how many partitions are swept in parallel.
	// Partitions are always locked one at a time per worker.
	Concurrency int `yaml:"concurrency"`
}

func (cfg *ExpirationCfg) Enabled() bool {
	return cfg != nil
}
