// Package summary rolls partition metrics up into a cross-tenant report.
package summary

import (
	"cmp"
	"slices"
	"time"

	"github.com/Borislavv/go-ash-partition/model"
	"github.com/benbjohnson/clock"
	"golang.org/x/sync/singleflight"
)

const TopConsumers = 10

// Build aggregates a metrics snapshot. Tenants are ranked by entries summed over
// all their namespaces, ties broken by tenant id.
func Build(metrics []model.Metrics, now time.Time) model.Summary {
	s := model.Summary{
		TotalPartitions: len(metrics),
		TopConsumers:    []model.TenantUsage{},
		GeneratedAt:     now,
	}

	usage := make(map[string]*model.TenantUsage)
	var hitRateSum float64
	for _, m := range metrics {
		s.TotalEntries += m.TotalEntries
		s.TotalSizeBytes += m.TotalSizeBytes
		hitRateSum += m.HitRatePct
		switch m.Status {
		case model.StatusFull:
			s.FullPartitions++
		case model.StatusHealthy:
			s.HealthyPartitions++
		}

		u, ok := usage[m.TenantID]
		if !ok {
			u = &model.TenantUsage{TenantID: m.TenantID}
			usage[m.TenantID] = u
		}
		u.Entries += m.TotalEntries
		u.SizeBytes += m.TotalSizeBytes
	}
	s.TotalTenants = len(usage)
	if len(metrics) > 0 {
		s.AvgHitRatePct = hitRateSum / float64(len(metrics))
	}

	for _, u := range usage {
		s.TopConsumers = append(s.TopConsumers, *u)
	}
	slices.SortFunc(s.TopConsumers, func(a, b model.TenantUsage) int {
		if c := cmp.Compare(b.Entries, a.Entries); c != 0 {
			return c
		}
		return cmp.Compare(a.TenantID, b.TenantID)
	})
	if len(s.TopConsumers) > TopConsumers {
		s.TopConsumers = s.TopConsumers[:TopConsumers]
	}
	return s
}

// Source returns a consistent-per-partition snapshot of all metrics.
type Source func() []model.Metrics

// Aggregator coalesces concurrent summary requests into one walk over the partitions.
type Aggregator struct {
	source Source
	clock  clock.Clock
	group  singleflight.Group
}

func NewAggregator(source Source, clk clock.Clock) *Aggregator {
	if clk == nil {
		clk = clock.New()
	}
	return &Aggregator{source: source, clock: clk}
}

func (a *Aggregator) Summary() model.Summary {
	v, _, _ := a.group.Do("summary", func() (any, error) {
		return Build(a.source(), a.clock.Now()), nil
	})
	s := v.(model.Summary)
	s.TopConsumers = slices.Clone(s.TopConsumers)
	return s
}
