// Package warming keeps the bookkeeping of cache warming jobs. It never fetches
// anything: a host runs the job and reports its counters back through Complete.
package warming

import (
	"errors"
	"slices"
	"sync"

	"github.com/Borislavv/go-ash-partition/model"
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

const DefaultMaxJobs = 10000

var (
	ErrJobNotFound = errors.New("warming job not found")
	ErrJobTerminal = errors.New("warming job is already terminal")
)

type Tracker struct {
	mu      sync.Mutex
	clock   clock.Clock
	maxJobs int
	jobs    map[string]*model.WarmingJob
	order   []string // ids by creation
}

// NewTracker creates a tracker that retains up to maxJobs jobs. Past that bound the
// oldest terminal jobs are dropped; pending jobs are never dropped.
func NewTracker(clk clock.Clock, maxJobs int) *Tracker {
	if clk == nil {
		clk = clock.New()
	}
	if maxJobs <= 0 {
		maxJobs = DefaultMaxJobs
	}
	return &Tracker{
		clock:   clk,
		maxJobs: maxJobs,
		jobs:    make(map[string]*model.WarmingJob),
	}
}

func (t *Tracker) Schedule(tenantID, namespace string, keys []string) model.WarmingJob {
	job := &model.WarmingJob{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Namespace: namespace,
		Keys:      slices.Clone(keys),
		Status:    model.WarmingPending,
		CreatedAt: t.clock.Now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[job.ID] = job
	t.order = append(t.order, job.ID)
	t.pruneUnlocked()
	return clone(job)
}

// IdleFunc is called when the last pending job of a partition completes.
type IdleFunc func(tenantID, namespace string)

// Complete records the outcome of a pending job. The job fails only when nothing
// was warmed and something failed; 0/0 completes. onIdle may be nil. It runs under
// the tracker lock, so no job of the same partition can be scheduled meanwhile.
func (t *Tracker) Complete(id string, warmed, failed int, onIdle IdleFunc) (model.WarmingJob, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok {
		return model.WarmingJob{}, ErrJobNotFound
	}
	if job.IsTerminal() {
		return clone(job), ErrJobTerminal
	}

	job.WarmedKeys, job.FailedKeys = max(warmed, 0), max(failed, 0)
	if job.WarmedKeys == 0 && job.FailedKeys > 0 {
		job.Status = model.WarmingFailed
	} else {
		job.Status = model.WarmingCompleted
	}
	job.CompletedAt = t.clock.Now()

	if onIdle != nil && !t.hasPendingUnlocked(job.TenantID, job.Namespace) {
		onIdle(job.TenantID, job.Namespace)
	}
	return clone(job), nil
}

func (t *Tracker) Get(id string) (model.WarmingJob, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	job, ok := t.jobs[id]
	if !ok {
		return model.WarmingJob{}, false
	}
	return clone(job), true
}

// List returns the jobs of tenantID oldest first. An empty tenantID lists all jobs.
func (t *Tracker) List(tenantID string) []model.WarmingJob {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.WarmingJob, 0)
	for _, id := range t.order {
		if job := t.jobs[id]; tenantID == "" || job.TenantID == tenantID {
			out = append(out, clone(job))
		}
	}
	return out
}

// HasPending reports whether tenantID/namespace still has a running job.
func (t *Tracker) HasPending(tenantID, namespace string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hasPendingUnlocked(tenantID, namespace)
}

func (t *Tracker) hasPendingUnlocked(tenantID, namespace string) bool {
	for _, job := range t.jobs {
		if job.TenantID == tenantID && job.Namespace == namespace && !job.IsTerminal() {
			return true
		}
	}
	return false
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}

func (t *Tracker) pruneUnlocked() {
	excess := len(t.jobs) - t.maxJobs
	if excess <= 0 {
		return
	}
	t.order = slices.DeleteFunc(t.order, func(id string) bool {
		if excess > 0 && t.jobs[id].IsTerminal() {
			delete(t.jobs, id)
			excess--
			return true
		}
		return false
	})
}

func clone(job *model.WarmingJob) model.WarmingJob {
	out := *job
	out.Keys = slices.Clone(job.Keys)
	return out
}
