package model

import "time"

type WarmingStatus string

const (
	WarmingPending   WarmingStatus = "pending"
	WarmingCompleted WarmingStatus = "completed"
	WarmingFailed    WarmingStatus = "failed"
)

// WarmingJob is bookkeeping for an external pre-population task.
// Completed and failed are terminal.
type WarmingJob struct {
	ID          string
	TenantID    string
	Namespace   string
	Keys        []string
	Status      WarmingStatus
	WarmedKeys  int
	FailedKeys  int
	CreatedAt   time.Time
	CompletedAt time.Time
}

func (j *WarmingJob) IsTerminal() bool {
	return j.Status == WarmingCompleted || j.Status == WarmingFailed
}
