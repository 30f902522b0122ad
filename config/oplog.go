package config

type OperationLogCfg struct {
	// Capacity is the size of the global ring buffer of recent operations.
	// The oldest record is dropped silently once it is full. Default: 20000.
	Capacity int `yaml:"capacity"`
}

type EstimatorCfg struct {
	// FallbackBytes is reported for values whose size cannot be estimated. Default: 128.
	FallbackBytes int64 `yaml:"fallback_bytes"`
}

type WarmingCfg struct {
	// MaxJobs bounds how many warming jobs are remembered.
	// When exceeded, the oldest terminal jobs are forgotten first. Default: 10000.
	MaxJobs int `yaml:"max_jobs"`
}
