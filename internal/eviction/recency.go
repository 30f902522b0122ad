package eviction

import "container/list"

// Recency is the per-partition recency list. Front is the most recently used key.
// It is unsafe without the owning partition lock.
type Recency struct {
	ll   *list.List
	lidx map[string]*list.Element
}

func NewRecency() *Recency {
	return &Recency{ll: list.New(), lidx: make(map[string]*list.Element)}
}

// Touch moves key to the front, inserting it when unknown.
func (r *Recency) Touch(key string) {
	if el := r.lidx[key]; el != nil {
		r.ll.MoveToFront(el)
		return
	}
	r.lidx[key] = r.ll.PushFront(key)
}

func (r *Recency) Remove(key string) {
	if el := r.lidx[key]; el != nil {
		r.ll.Remove(el)
		delete(r.lidx, key)
	}
}

// Tail returns the least recently used key.
func (r *Recency) Tail() (string, bool) {
	el := r.ll.Back()
	if el == nil {
		return "", false
	}
	return el.Value.(string), true
}

// Keys returns keys from most to least recently used.
func (r *Recency) Keys() []string {
	out := make([]string, 0, r.ll.Len())
	for el := r.ll.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(string))
	}
	return out
}

func (r *Recency) Len() int { return r.ll.Len() }

func (r *Recency) Reset() {
	r.ll.Init()
	clear(r.lidx)
}
