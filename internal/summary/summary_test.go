package summary

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Borislavv/go-ash-partition/model"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func metric(tenant, ns string, entries, size int64, hitRate float64, status model.Status) model.Metrics {
	return model.Metrics{
		TenantID:       tenant,
		Namespace:      ns,
		TotalEntries:   entries,
		TotalSizeBytes: size,
		HitRatePct:     hitRate,
		Status:         status,
	}
}

// TestBuild_Empty verifies an empty snapshot yields a zero summary.
func TestBuild_Empty(t *testing.T) {
	now := time.Unix(100, 0)
	s := Build(nil, now)
	require.Zero(t, s.TotalTenants)
	require.Zero(t, s.TotalPartitions)
	require.Zero(t, s.AvgHitRatePct)
	require.NotNil(t, s.TopConsumers)
	require.Empty(t, s.TopConsumers)
	require.Equal(t, now, s.GeneratedAt)
}

// TestBuild_Totals verifies sums, the simple hit rate average and status counts.
func TestBuild_Totals(t *testing.T) {
	s := Build([]model.Metrics{
		metric("a", "default", 10, 100, 50, model.StatusFull),
		metric("a", "orders", 5, 50, 100, model.StatusHealthy),
		metric("b", "default", 1, 10, 0, model.StatusWarming),
	}, time.Time{})

	require.Equal(t, 2, s.TotalTenants)
	require.Equal(t, 3, s.TotalPartitions)
	require.Equal(t, int64(16), s.TotalEntries)
	require.Equal(t, int64(160), s.TotalSizeBytes)
	require.InDelta(t, 50.0, s.AvgHitRatePct, 1e-9)
	require.Equal(t, 1, s.FullPartitions)
	require.Equal(t, 1, s.HealthyPartitions)
}

// TestBuild_TopConsumers ranks tenants by summed entries, ties by id, capped at ten.
func TestBuild_TopConsumers(t *testing.T) {
	var metrics []model.Metrics
	for i := 0; i < 15; i++ {
		metrics = append(metrics, metric(fmt.Sprintf("t-%02d", i), "default", int64(i), int64(i*10), 0, model.StatusHealthy))
	}
	// t-03 gains a second namespace and moves to the top
	metrics = append(metrics, metric("t-03", "orders", 100, 1, 0, model.StatusHealthy))
	// tie with t-14 broken by id
	metrics = append(metrics, metric("t-00", "orders", 14, 0, 0, model.StatusHealthy))

	s := Build(metrics, time.Time{})
	require.Len(t, s.TopConsumers, TopConsumers)
	require.Equal(t, model.TenantUsage{TenantID: "t-03", Entries: 103, SizeBytes: 31}, s.TopConsumers[0])
	require.Equal(t, "t-00", s.TopConsumers[1].TenantID)
	require.Equal(t, "t-14", s.TopConsumers[2].TenantID)
	require.Equal(t, "t-13", s.TopConsumers[3].TenantID)
}

// TestAggregator_Summary verifies the aggregator stamps the clock time.
func TestAggregator_Summary(t *testing.T) {
	clk := clock.NewMock()
	clk.Add(time.Hour)
	a := NewAggregator(func() []model.Metrics {
		return []model.Metrics{metric("a", "default", 1, 1, 100, model.StatusHealthy)}
	}, clk)

	s := a.Summary()
	require.Equal(t, clk.Now(), s.GeneratedAt)
	require.Equal(t, 1, s.TotalTenants)
}

// TestAggregator_Coalesces verifies concurrent callers share one snapshot.
func TestAggregator_Coalesces(t *testing.T) {
	var (
		calls   int64
		release = make(chan struct{})
		entered = make(chan struct{}, 1)
	)
	a := NewAggregator(func() []model.Metrics {
		if atomic.AddInt64(&calls, 1) == 1 {
			entered <- struct{}{}
			<-release
		}
		return []model.Metrics{metric("a", "default", 1, 1, 0, model.StatusHealthy)}
	}, clock.NewMock())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Summary()
	}()
	<-entered

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := a.Summary()
			if s.TotalEntries != 1 {
				t.Errorf("unexpected total entries %d", s.TotalEntries)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Less(t, atomic.LoadInt64(&calls), int64(9))
}
