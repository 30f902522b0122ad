// Package oplog keeps the most recent cache operations in a fixed-size ring.
package oplog

import (
	"slices"
	"sync"

	"github.com/Borislavv/go-ash-partition/model"
)

const (
	DefaultCapacity = 20000
	DefaultLimit    = 100
)

// Ring is a bounded log. Once full, every Append overwrites the oldest record.
type Ring struct {
	mu   sync.Mutex
	buf  []model.Operation
	head int // next write position
	size int
}

func New(capacity int) *Ring {
	r := &Ring{}
	r.Init(capacity)
	return r
}

func (r *Ring) Init(capacity int) {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	r.buf = make([]model.Operation, capacity)
	r.head, r.size = 0, 0
}

func (r *Ring) Cap() int { return len(r.buf) }

func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

func (r *Ring) Append(op model.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.head] = op
	r.head = (r.head + 1) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	}
}

// List returns the last limit records matching filter, oldest first.
// A non-positive limit means DefaultLimit.
func (r *Ring) List(filter model.OperationFilter, limit int) []model.Operation {
	if limit <= 0 {
		limit = DefaultLimit
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Operation, 0, min(limit, r.size))
	// walk newest to oldest, then reverse
	for i := 0; i < r.size && len(out) < limit; i++ {
		idx := (r.head - 1 - i + len(r.buf)) % len(r.buf)
		if op := &r.buf[idx]; filter.Match(op) {
			out = append(out, *op)
		}
	}
	slices.Reverse(out)
	return out
}

func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.buf)
	r.head, r.size = 0, 0
}
