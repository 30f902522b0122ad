// Package registry keeps the set of live partitions, sharded by the xxh3 hash of
// the (tenant, namespace) pair so that lookups for unrelated tenants never share a lock.
package registry

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/Borislavv/go-ash-partition/internal/partition"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// Tunables.
const (
	NumOfShards = 64
	shardMask   = NumOfShards - 1
)

// Key identifies a partition.
type Key struct {
	TenantID  string
	Namespace string
}

func (k Key) hash() uint64 {
	return xxh3.HashString(k.TenantID + "\x00" + k.Namespace)
}

type shard struct {
	sync.RWMutex
	items map[Key]*partition.Partition
}

// Registry is a sharded concurrent map of partitions.
type Registry struct {
	len    int64 // number of partitions (atomic)
	shards [NumOfShards]*shard
}

func New() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i] = &shard{items: make(map[Key]*partition.Partition)}
	}
	return r
}

func (r *Registry) shard(key Key) *shard { return r.shards[key.hash()&shardMask] }
func (r *Registry) Len() int             { return int(atomic.LoadInt64(&r.len)) }

// Get returns the partition registered under key.
func (r *Registry) Get(key Key) (*partition.Partition, bool) {
	sh := r.shard(key)
	sh.RLock()
	p, ok := sh.items[key]
	sh.RUnlock()
	return p, ok
}

// GetOrCreate returns the existing partition or registers the one built by create.
// create runs under the shard write lock, so it is called at most once per key.
func (r *Registry) GetOrCreate(key Key, create func() (*partition.Partition, error)) (p *partition.Partition, created bool, err error) {
	sh := r.shard(key)

	sh.RLock()
	p, ok := sh.items[key]
	sh.RUnlock()
	if ok {
		return p, false, nil
	}

	sh.Lock()
	defer sh.Unlock()
	if p, ok = sh.items[key]; ok {
		return p, false, nil
	}
	if p, err = create(); err != nil {
		return nil, false, err
	}
	sh.items[key] = p
	atomic.AddInt64(&r.len, 1)
	return p, true, nil
}

// Snapshot returns all registered partitions in no particular order.
func (r *Registry) Snapshot() []*partition.Partition {
	out := make([]*partition.Partition, 0, r.Len())
	for _, sh := range r.shards {
		sh.RLock()
		for _, p := range sh.items {
			out = append(out, p)
		}
		sh.RUnlock()
	}
	return out
}

// Walk applies fn to every partition synchronously. Shard locks are not held while fn runs.
func (r *Registry) Walk(ctx context.Context, fn func(p *partition.Partition)) {
	for _, p := range r.Snapshot() {
		if ctx.Err() != nil {
			return
		}
		fn(p)
	}
}

// WalkConcurrent executes fn over all partitions with bounded concurrency and
// returns the first error. Use in maintenance/background tasks; avoid on hot paths.
func (r *Registry) WalkConcurrent(ctx context.Context, concurrency int, fn func(ctx context.Context, p *partition.Partition) error) error {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, p := range r.Snapshot() {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, p)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
