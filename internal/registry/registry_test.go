package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Borislavv/go-ash-partition/internal/partition"
	"github.com/Borislavv/go-ash-partition/model"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func factory(key Key, calls *int64) func() (*partition.Partition, error) {
	return func() (*partition.Partition, error) {
		atomic.AddInt64(calls, 1)
		return partition.New(model.TenantConfig{
			TenantID:       key.TenantID,
			Namespace:      key.Namespace,
			MaxEntries:     10,
			DefaultTTL:     time.Minute,
			EvictionPolicy: model.EvictionLRU,
		}, clock.NewMock())
	}
}

// TestRegistry_GetOrCreate verifies the factory runs once per key.
func TestRegistry_GetOrCreate(t *testing.T) {
	r := New()
	key := Key{TenantID: "acme", Namespace: "default"}

	_, ok := r.Get(key)
	require.False(t, ok)

	var calls int64
	p1, created, err := r.GetOrCreate(key, factory(key, &calls))
	require.NoError(t, err)
	require.True(t, created)

	p2, created, err := r.GetOrCreate(key, factory(key, &calls))
	require.NoError(t, err)
	require.False(t, created)
	require.Same(t, p1, p2)
	require.Equal(t, int64(1), calls)
	require.Equal(t, 1, r.Len())

	got, ok := r.Get(key)
	require.True(t, ok)
	require.Same(t, p1, got)
}

// TestRegistry_GetOrCreate_FactoryError leaves nothing registered.
func TestRegistry_GetOrCreate_FactoryError(t *testing.T) {
	r := New()
	boom := errors.New("boom")
	_, _, err := r.GetOrCreate(Key{TenantID: "a"}, func() (*partition.Partition, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	require.Zero(t, r.Len())
}

// TestRegistry_KeysAreDistinct verifies tenant and namespace never collide by concatenation.
func TestRegistry_KeysAreDistinct(t *testing.T) {
	r := New()
	var calls int64
	k1 := Key{TenantID: "ab", Namespace: "c"}
	k2 := Key{TenantID: "a", Namespace: "bc"}
	_, _, err := r.GetOrCreate(k1, factory(k1, &calls))
	require.NoError(t, err)
	_, _, err = r.GetOrCreate(k2, factory(k2, &calls))
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
}

// TestRegistry_ConcurrentGetOrCreate verifies a single partition wins under contention.
func TestRegistry_ConcurrentGetOrCreate(t *testing.T) {
	r := New()
	key := Key{TenantID: "acme", Namespace: "orders"}

	var calls int64
	var wg sync.WaitGroup
	results := make([]*partition.Partition, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, _, err := r.GetOrCreate(key, factory(key, &calls))
			if err != nil {
				t.Error(err)
			}
			results[i] = p
		}(i)
	}
	wg.Wait()

	require.Equal(t, int64(1), calls)
	for _, p := range results {
		require.Same(t, results[0], p)
	}
}

// TestRegistry_Walk visits each partition once.
func TestRegistry_Walk(t *testing.T) {
	r := New()
	var calls int64
	for i := 0; i < 100; i++ {
		key := Key{TenantID: fmt.Sprintf("t-%d", i), Namespace: "default"}
		_, _, err := r.GetOrCreate(key, factory(key, &calls))
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	r.Walk(context.Background(), func(p *partition.Partition) {
		seen[p.Config().TenantID] = true
	})
	require.Len(t, seen, 100)
	require.Len(t, r.Snapshot(), 100)
}

// TestRegistry_WalkConcurrent visits every partition and propagates errors.
func TestRegistry_WalkConcurrent(t *testing.T) {
	r := New()
	var calls int64
	for i := 0; i < 50; i++ {
		key := Key{TenantID: fmt.Sprintf("t-%d", i), Namespace: "default"}
		_, _, err := r.GetOrCreate(key, factory(key, &calls))
		require.NoError(t, err)
	}

	var visited int64
	err := r.WalkConcurrent(context.Background(), 4, func(_ context.Context, _ *partition.Partition) error {
		atomic.AddInt64(&visited, 1)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(50), visited)

	boom := errors.New("boom")
	err = r.WalkConcurrent(context.Background(), 4, func(_ context.Context, p *partition.Partition) error {
		if p.Config().TenantID == "t-7" {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

// TestRegistry_WalkConcurrent_Cancelled reports the context error.
func TestRegistry_WalkConcurrent_Cancelled(t *testing.T) {
	r := New()
	var calls int64
	key := Key{TenantID: "acme"}
	_, _, err := r.GetOrCreate(key, factory(key, &calls))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.WalkConcurrent(ctx, 1, func(context.Context, *partition.Partition) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
