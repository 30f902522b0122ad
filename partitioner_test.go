package ashpartition

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Borislavv/go-ash-partition/config"
	"github.com/Borislavv/go-ash-partition/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testCfg() *config.Config {
	return &config.Config{
		Expiration: &config.ExpirationCfg{Interval: 10 * time.Millisecond, Concurrency: 2},
		Telemetry:  &config.TelemetryCfg{Interval: time.Hour},
		Tenants: []config.TenantCfg{
			{TenantID: "acme", MaxEntries: 2, DefaultTTL: time.Minute, EvictionPolicy: "lru"},
			{TenantID: "acme", Namespace: "orders", MaxEntries: 100, DefaultTTL: time.Minute, EvictionPolicy: "fifo"},
		},
	}
}

// TestPartitioner_Close cancels context and stops background workers.
func TestPartitioner_Close(t *testing.T) {
	p, err := New(context.Background(), testCfg(), zerolog.Nop())
	require.NoError(t, err)

	// Close should not panic
	require.NoError(t, p.Close())

	// Close should be idempotent
	require.NoError(t, p.Close())
}

// TestNew_ConfiguresTenants verifies tenants listed in config are ready to use.
func TestNew_ConfiguresTenants(t *testing.T) {
	p, err := New(context.Background(), testCfg(), zerolog.Nop())
	require.NoError(t, err)
	defer p.Close()

	cfg, ok := p.TenantConfig("acme", "")
	require.True(t, ok)
	require.Equal(t, model.EvictionLRU, cfg.EvictionPolicy)
	require.Equal(t, model.WriteAround, cfg.WriteMode)

	cfg, ok = p.TenantConfig("acme", "orders")
	require.True(t, ok)
	require.Equal(t, model.EvictionFIFO, cfg.EvictionPolicy)
	require.Equal(t, time.Hour, p.Interval())
}

// TestNew_RejectsInvalidTenant verifies configuration errors abort startup.
func TestNew_RejectsInvalidTenant(t *testing.T) {
	cfg := testCfg()
	cfg.Tenants = append(cfg.Tenants, config.TenantCfg{TenantID: "bad", MaxEntries: 1, EvictionPolicy: "arc"})

	_, err := New(context.Background(), cfg, zerolog.Nop())
	require.ErrorIs(t, err, ErrUnsupportedPolicy)
}

// TestPartitioner_NilConfig verifies the partitioner runs without workers.
func TestPartitioner_NilConfig(t *testing.T) {
	p, err := New(context.Background(), nil, zerolog.Nop())
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Set("acme", "", "k", "v")
	require.ErrorIs(t, err, ErrTenantNotConfigured)

	_, err = p.ConfigureTenant(model.TenantConfig{TenantID: "acme", MaxEntries: 1, DefaultTTL: time.Hour})
	require.NoError(t, err)
	_, err = p.Set("acme", "", "k", "v", WithTags("x"))
	require.NoError(t, err)

	entry, ok, err := p.Get("acme", "", "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", entry.Value)
}

// TestPartitioner_NamespacesAreIsolated verifies eviction in one namespace never touches another.
func TestPartitioner_NamespacesAreIsolated(t *testing.T) {
	p, err := New(context.Background(), testCfg(), zerolog.Nop())
	require.NoError(t, err)
	defer p.Close()

	for i := 0; i < 10; i++ {
		_, err = p.Set("acme", "", fmt.Sprint(i), i)
		require.NoError(t, err)
		_, err = p.Set("acme", "orders", fmt.Sprint(i), i)
		require.NoError(t, err)
	}

	def, _ := p.GetMetrics("acme", "")
	orders, _ := p.GetMetrics("acme", "orders")
	require.Equal(t, int64(2), def.TotalEntries)
	require.Equal(t, int64(8), def.EvictionCount)
	require.Equal(t, int64(10), orders.TotalEntries)
	require.Zero(t, orders.EvictionCount)

	s := p.GetSummary()
	require.Equal(t, 1, s.TotalTenants)
	require.Equal(t, 2, s.TotalPartitions)
}

// TestPartitioner_SweeperReclaimsExpired verifies the background sweeper removes idle expired entries.
func TestPartitioner_SweeperReclaimsExpired(t *testing.T) {
	p, err := New(context.Background(), testCfg(), zerolog.Nop())
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Set("acme", "orders", "k", "v", WithTTL(time.Millisecond))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		m, _ := p.GetMetrics("acme", "orders")
		return m.ExpiredCount == 1 && m.TotalEntries == 0
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		_, removed, _ := p.Metrics()
		return removed == 1
	}, time.Second, 5*time.Millisecond)
}

func BenchmarkPartitioner_SetGet(b *testing.B) {
	cfg := &config.Config{
		Tenants: []config.TenantCfg{
			{TenantID: "bench", MaxEntries: 1000, DefaultTTL: time.Minute, EvictionPolicy: "lfu"},
		},
	}
	p, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(b, err)
	defer p.Close()

	payload := make([]byte, 1024) // 1KB payload
	keys := make([]string, 4096)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := keys[i%len(keys)]
			if i%4 == 0 {
				_, _ = p.Set("bench", "", key, payload)
			} else {
				_, _, _ = p.Get("bench", "", key)
			}
			i++
		}
	})
}
