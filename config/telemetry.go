package config

import "time"

const defaultTelemetryInterval = 5 * time.Second

type TelemetryCfg struct {
	// Interval between two summary log lines. Example: "5s".
	Interval time.Duration `yaml:"interval"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil
}
