package engine

import (
	"cmp"
	"slices"

	"github.com/Borislavv/go-ash-partition/internal/registry"
	"github.com/Borislavv/go-ash-partition/model"
)

func (e *Engine) GetMetrics(tenantID, namespace string) (model.Metrics, bool) {
	p, ok := e.partitions.Get(registry.Key{TenantID: tenantID, Namespace: namespaceOf(namespace)})
	if !ok {
		return model.Metrics{}, false
	}
	return p.Metrics(), true
}

// ListAllMetrics snapshots every partition, each under its own lock, sorted by tenant and namespace.
func (e *Engine) ListAllMetrics() []model.Metrics {
	partitions := e.partitions.Snapshot()
	out := make([]model.Metrics, 0, len(partitions))
	for _, p := range partitions {
		out = append(out, p.Metrics())
	}
	slices.SortFunc(out, func(a, b model.Metrics) int {
		if c := cmp.Compare(a.TenantID, b.TenantID); c != 0 {
			return c
		}
		return cmp.Compare(a.Namespace, b.Namespace)
	})
	return out
}

// GetSummary rolls all partitions up. Concurrent callers share one walk.
func (e *Engine) GetSummary() model.Summary {
	return e.summary.Summary()
}

// ListOperations returns the last limit operations matching filter, oldest first.
// A non-positive limit means 100.
func (e *Engine) ListOperations(filter model.OperationFilter, limit int) []model.Operation {
	return e.oplog.List(filter, limit)
}

// PartitionsLen returns the number of configured partitions.
func (e *Engine) PartitionsLen() int {
	return e.partitions.Len()
}
