package telemetry

import (
	"github.com/Borislavv/go-ash-partition/internal/sweeper"
	"github.com/Borislavv/go-ash-partition/model"
)

type sampler struct {
	sweeper sweeper.Sweeper
}

func newSampler(sw sweeper.Sweeper) sampler {
	return sampler{sweeper: sw}
}

// snapshot holds cumulative counters (monotonic until a partition is flushed).
type snapshot struct {
	hits      uint64
	misses    uint64
	evictions uint64
	expired   uint64

	sweeps       uint64
	sweptEntries uint64
	sweepErrors  uint64
}

func (s sampler) snapshot(metrics []model.Metrics) snapshot {
	var out snapshot
	for _, m := range metrics {
		out.hits += uint64(max(m.HitCount, 0))
		out.misses += uint64(max(m.MissCount, 0))
		out.evictions += uint64(max(m.EvictionCount, 0))
		out.expired += uint64(max(m.ExpiredCount, 0))
	}

	sweeps, removed, errs := s.sweeper.Metrics()
	out.sweeps = uint64(max(sweeps, 0))
	out.sweptEntries = uint64(max(removed, 0))
	out.sweepErrors = uint64(max(errs, 0))
	return out
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		hits:      delta(prev.hits, cur.hits),
		misses:    delta(prev.misses, cur.misses),
		evictions: delta(prev.evictions, cur.evictions),
		expired:   delta(prev.expired, cur.expired),

		sweeps:       delta(prev.sweeps, cur.sweeps),
		sweptEntries: delta(prev.sweptEntries, cur.sweptEntries),
		sweepErrors:  delta(prev.sweepErrors, cur.sweepErrors),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
