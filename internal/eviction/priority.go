package eviction

import (
	"container/heap"
	"time"
)

// Item carries the fields a priority order may be keyed on.
// Seq is the partition-wide write sequence and breaks every tie, oldest write first.
type Item struct {
	Key       string
	Seq       uint64
	CreatedAt time.Time
	ExpiresAt time.Time
}

type node struct {
	Item
	freq uint64
	pos  int
}

type lessFunc func(a, b *node) bool

func byFrequency(a, b *node) bool {
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.Seq < b.Seq
}

func byExpiry(a, b *node) bool {
	if !a.ExpiresAt.Equal(b.ExpiresAt) {
		return a.ExpiresAt.Before(b.ExpiresAt)
	}
	return a.Seq < b.Seq
}

func byCreation(a, b *node) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.Seq < b.Seq
}

// priority is an indexed min-heap of keys. Root is the next victim.
type priority struct {
	nodes []*node
	byKey map[string]*node
	less  lessFunc
}

func newPriority(less lessFunc) *priority {
	return &priority{byKey: make(map[string]*node), less: less}
}

// heap.Interface
func (p *priority) Len() int           { return len(p.nodes) }
func (p *priority) Less(i, j int) bool { return p.less(p.nodes[i], p.nodes[j]) }
func (p *priority) Swap(i, j int) {
	p.nodes[i], p.nodes[j] = p.nodes[j], p.nodes[i]
	p.nodes[i].pos = i
	p.nodes[j].pos = j
}
func (p *priority) Push(x any) {
	n := x.(*node)
	n.pos = len(p.nodes)
	p.nodes = append(p.nodes, n)
}
func (p *priority) Pop() any {
	old := p.nodes
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	p.nodes = old[:last]
	n.pos = -1
	return n
}

func (p *priority) upsert(it Item, freq uint64) {
	if n, ok := p.byKey[it.Key]; ok {
		n.Item = it
		n.freq = freq
		heap.Fix(p, n.pos)
		return
	}
	n := &node{Item: it, freq: freq}
	p.byKey[it.Key] = n
	heap.Push(p, n)
}

func (p *priority) setFrequency(key string, freq uint64) {
	if n, ok := p.byKey[key]; ok {
		n.freq = freq
		heap.Fix(p, n.pos)
	}
}

func (p *priority) remove(key string) {
	if n, ok := p.byKey[key]; ok {
		heap.Remove(p, n.pos)
		delete(p.byKey, key)
	}
}

func (p *priority) peek() (string, bool) {
	if len(p.nodes) == 0 {
		return "", false
	}
	return p.nodes[0].Key, true
}

func (p *priority) reset() {
	clear(p.nodes)
	p.nodes = p.nodes[:0]
	clear(p.byKey)
}
