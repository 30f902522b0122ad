// Package eviction keeps the auxiliary structures of a partition and picks
// the single victim to remove when the partition is at capacity.
//
// The recency list and the frequency table are maintained for every policy,
// so a policy change can rebuild the priority order without losing history.
// LFU, TTL and FIFO additionally keep an indexed min-heap (O(log n) per update,
// O(1) victim lookup). All ties are broken by write sequence, oldest write first.
//
// None of the types here are safe for concurrent use: they live under the owning
// partition lock.
package eviction

import (
	"errors"
	"fmt"

	"github.com/Borislavv/go-ash-partition/model"
)

var (
	ErrUnknownPolicy     = errors.New("unknown eviction policy")
	ErrUnsupportedPolicy = errors.New("unsupported eviction policy")
)

// Validate rejects unknown policies and the declared-but-unimplemented ones.
func Validate(policy model.EvictionPolicy) error {
	if !policy.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
	if !policy.Supported() {
		return fmt.Errorf("%w: %q", ErrUnsupportedPolicy, policy)
	}
	return nil
}

type Index struct {
	policy  model.EvictionPolicy
	recency *Recency
	freq    map[string]uint64
	prio    *priority // nil under LRU
}

func NewIndex(policy model.EvictionPolicy) (*Index, error) {
	if err := Validate(policy); err != nil {
		return nil, err
	}
	return &Index{
		policy:  policy,
		recency: NewRecency(),
		freq:    make(map[string]uint64),
		prio:    priorityFor(policy),
	}, nil
}

func priorityFor(policy model.EvictionPolicy) *priority {
	switch policy {
	case model.EvictionLFU:
		return newPriority(byFrequency)
	case model.EvictionTTL:
		return newPriority(byExpiry)
	case model.EvictionFIFO:
		return newPriority(byCreation)
	default:
		return nil
	}
}

func (ix *Index) Policy() model.EvictionPolicy { return ix.policy }
func (ix *Index) Len() int                     { return ix.recency.Len() }

// OnWrite records an insert or overwrite: most recently used, frequency reset to 0.
func (ix *Index) OnWrite(it Item) {
	ix.recency.Touch(it.Key)
	ix.freq[it.Key] = 0
	if ix.prio != nil {
		ix.prio.upsert(it, 0)
	}
}

// OnAccess records a read hit: most recently used, frequency incremented.
func (ix *Index) OnAccess(key string) {
	ix.recency.Touch(key)
	ix.freq[key]++
	if ix.policy == model.EvictionLFU {
		ix.prio.setFrequency(key, ix.freq[key])
	}
}

func (ix *Index) OnRemove(key string) {
	ix.recency.Remove(key)
	delete(ix.freq, key)
	if ix.prio != nil {
		ix.prio.remove(key)
	}
}

// Frequency returns the number of hits since the key was last written.
func (ix *Index) Frequency(key string) uint64 { return ix.freq[key] }

// Victim selects exactly one key to evict without removing it.
// An empty index has no victim.
func (ix *Index) Victim() (string, bool) {
	if ix.prio != nil {
		return ix.prio.peek()
	}
	return ix.recency.Tail()
}

func (ix *Index) Reset() {
	ix.recency.Reset()
	clear(ix.freq)
	if ix.prio != nil {
		ix.prio.reset()
	}
}

// SetPolicy switches the policy and rebuilds the priority order from items.
// The recency list and frequency table are kept as they are.
func (ix *Index) SetPolicy(policy model.EvictionPolicy, items []Item) error {
	if err := Validate(policy); err != nil {
		return err
	}
	if policy == ix.policy {
		return nil
	}
	ix.policy = policy
	ix.prio = priorityFor(policy)
	if ix.prio != nil {
		for _, it := range items {
			ix.prio.upsert(it, ix.freq[it.Key])
		}
	}
	return nil
}
