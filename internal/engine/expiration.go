package engine

import (
	"context"
	"sync/atomic"

	"github.com/Borislavv/go-ash-partition/internal/partition"
)

// RunExpiration removes every expired entry of every partition and returns how many
// were removed. Partitions are locked one at a time; concurrency follows the
// expiration config and defaults to one.
func (e *Engine) RunExpiration(ctx context.Context) (int, error) {
	concurrency := 1
	if e.cfg.Expiration.Enabled() {
		concurrency = e.cfg.Expiration.Concurrency
	}

	var total atomic.Int64
	err := e.partitions.WalkConcurrent(ctx, concurrency, func(_ context.Context, p *partition.Partition) error {
		if n := p.Expire(); n > 0 {
			total.Add(int64(n))
		}
		return nil
	})

	removed := int(total.Load())
	if removed > 0 {
		e.logger.Debug().Int("removed", removed).Msg("expired entries reclaimed")
	}
	return removed, err
}
