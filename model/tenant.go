package model

import "time"

// DefaultNamespace is used when a caller addresses a tenant without a namespace.
const DefaultNamespace = "default"

// EvictionPolicy defines how a full partition picks its victim.
type EvictionPolicy string

const (
	// EvictionLRU evicts the least recently touched entry.
	EvictionLRU EvictionPolicy = "lru"

	// EvictionLFU evicts the entry with the lowest access frequency since its last write.
	EvictionLFU EvictionPolicy = "lfu"

	// EvictionTTL evicts the entry that expires soonest, expired or not.
	EvictionTTL EvictionPolicy = "ttl"

	// EvictionFIFO evicts the entry with the oldest creation time.
	EvictionFIFO EvictionPolicy = "fifo"

	// EvictionARC is part of the contract but has no implementation yet.
	// Configuring it is rejected.
	EvictionARC EvictionPolicy = "arc"
)

// Known reports whether p is one of the declared policies.
func (p EvictionPolicy) Known() bool {
	switch p {
	case EvictionLRU, EvictionLFU, EvictionTTL, EvictionFIFO, EvictionARC:
		return true
	}
	return false
}

// Supported reports whether the engine can evict with p.
func (p EvictionPolicy) Supported() bool {
	return p.Known() && p != EvictionARC
}

// WriteMode is recorded per tenant. The engine never executes it,
// a host must wire write-through/write-behind to its own writer.
type WriteMode string

const (
	WriteThrough WriteMode = "write_through"
	WriteBehind  WriteMode = "write_behind"
	WriteAround  WriteMode = "write_around"
)

func (m WriteMode) Known() bool {
	switch m {
	case WriteThrough, WriteBehind, WriteAround:
		return true
	}
	return false
}

// TenantConfig is the quota and policy of one (TenantID, Namespace) partition.
//
// MaxMemoryMB is advisory: the engine tracks TotalSizeBytes and PeakMemoryMB
// against it but evicts only by entry count.
//
// DefaultTTL applies to every Set without an explicit TTL. Zero is valid and
// means such entries expire as soon as any time has passed after the write.
type TenantConfig struct {
	TenantID           string
	Namespace          string
	MaxEntries         int
	MaxMemoryMB        float64
	DefaultTTL         time.Duration
	EvictionPolicy     EvictionPolicy
	WriteMode          WriteMode
	WarmingEnabled     bool
	CompressionEnabled bool
	EncryptionEnabled  bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
