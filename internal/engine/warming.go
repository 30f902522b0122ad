package engine

import (
	"github.com/Borislavv/go-ash-partition/internal/registry"
	"github.com/Borislavv/go-ash-partition/model"
)

// ScheduleWarmingJob registers a pending job. If the partition exists and has warming
// enabled, its status reads warming until the last of its jobs completes.
func (e *Engine) ScheduleWarmingJob(tenantID, namespace string, keys []string) model.WarmingJob {
	namespace = namespaceOf(namespace)
	job := e.warming.Schedule(tenantID, namespace, keys)

	if p, ok := e.partitions.Get(registry.Key{TenantID: tenantID, Namespace: namespace}); ok && p.Config().WarmingEnabled {
		p.MarkWarming()
	}

	e.record(model.Operation{
		Type:      model.OpWarm,
		TenantID:  tenantID,
		Namespace: namespace,
		Timestamp: job.CreatedAt,
	})
	e.logger.Info().
		Str("job_id", job.ID).
		Str("tenant_id", tenantID).
		Str("namespace", namespace).
		Int("keys", len(keys)).
		Msg("warming job scheduled")
	return job
}

// CompleteWarmingJob records the outcome reported by whoever ran the job.
func (e *Engine) CompleteWarmingJob(id string, warmed, failed int) (model.WarmingJob, error) {
	job, err := e.warming.Complete(id, warmed, failed, e.finishWarming)
	if err != nil {
		return job, jobErr(err, "complete warming job", id)
	}

	e.logger.Info().
		Str("job_id", job.ID).
		Str("tenant_id", job.TenantID).
		Str("status", string(job.Status)).
		Int("warmed", job.WarmedKeys).
		Int("failed", job.FailedKeys).
		Msg("warming job completed")
	return job, nil
}

// finishWarming restores the occupancy status once a partition has no pending job.
func (e *Engine) finishWarming(tenantID, namespace string) {
	if p, ok := e.partitions.Get(registry.Key{TenantID: tenantID, Namespace: namespace}); ok {
		p.FinishWarming()
	}
}

func (e *Engine) GetWarmingJob(id string) (model.WarmingJob, bool) {
	return e.warming.Get(id)
}

// ListWarmingJobs returns the jobs of tenantID oldest first. An empty tenantID lists all of them.
func (e *Engine) ListWarmingJobs(tenantID string) []model.WarmingJob {
	return e.warming.List(tenantID)
}
