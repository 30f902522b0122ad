package sweeper

// NoOpSweeper is used when expiration is not configured.
// Expired entries are then discovered on Get only.
type NoOpSweeper struct{}

// Metrics always returns zero values.
func (NoOpSweeper) Metrics() (sweeps, removed, errors int64) {
	return 0, 0, 0
}

// Close does nothing and returns nil.
func (NoOpSweeper) Close() error {
	return nil
}
