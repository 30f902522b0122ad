package model

import "time"

type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusFull     Status = "full"
	StatusWarming  Status = "warming"
	StatusDegraded Status = "degraded"
	StatusDisabled Status = "disabled"
)

// Metrics is the per-partition counter record.
// TotalEntries always equals the live partition size when a call returns.
type Metrics struct {
	TenantID       string
	Namespace      string
	TotalEntries   int64
	TotalSizeBytes int64
	HitCount       int64
	MissCount      int64
	HitRatePct     float64
	EvictionCount  int64
	ExpiredCount   int64
	PeakMemoryMB   float64
	Status         Status
	UpdatedAt      time.Time
}

// RecalcHitRate keeps HitRatePct = 100 * hits / (hits + misses), or 0 without accesses.
func (m *Metrics) RecalcHitRate() {
	total := m.HitCount + m.MissCount
	if total == 0 {
		m.HitRatePct = 0
		return
	}
	m.HitRatePct = float64(m.HitCount) / float64(total) * 100
}

// TenantUsage is one row of the top consumers list.
type TenantUsage struct {
	TenantID  string
	Entries   int64
	SizeBytes int64
}

// Summary is the cross-tenant rollup of all partition metrics.
type Summary struct {
	TotalTenants      int
	TotalPartitions   int
	TotalEntries      int64
	TotalSizeBytes    int64
	AvgHitRatePct     float64
	FullPartitions    int
	HealthyPartitions int
	TopConsumers      []TenantUsage
	GeneratedAt       time.Time
}
