package sweeper

import "sync/atomic"

type sweeperCounters struct {
	sweeps  atomic.Int64 // finished sweeps
	removed atomic.Int64 // expired entries removed
	errors  atomic.Int64 // sweeps interrupted by an error
}

func newSweeperCounters() *sweeperCounters {
	return &sweeperCounters{}
}

func (c *sweeperCounters) snapshot() (sweeps, removed, errors int64) {
	sweeps = c.sweeps.Load()
	removed = c.removed.Load()
	errors = c.errors.Load()
	return
}
