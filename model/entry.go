package model

import (
	"slices"
	"time"
)

// Entry is a snapshot of a cached value. Mutating it does not affect the partition.
type Entry struct {
	Key          string
	Value        any
	TTL          time.Duration
	CreatedAt    time.Time
	ExpiresAt    time.Time
	AccessCount  uint64
	LastAccessAt time.Time
	SizeBytes    int64
	Tags         []string
	Version      uint64
}

// IsExpired uses a strict comparison: an entry is still alive at exactly ExpiresAt.
func (e *Entry) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// HasTag reports whether the entry is labeled with tag.
func (e *Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Clone returns a copy that shares nothing mutable with e except Value.
func (e *Entry) Clone() Entry {
	c := *e
	c.Tags = slices.Clone(e.Tags)
	return c
}
