package model

import "time"

type OperationType string

const (
	OpGet    OperationType = "get"
	OpSet    OperationType = "set"
	OpDelete OperationType = "delete"
	OpEvict  OperationType = "evict"
	OpFlush  OperationType = "flush"
	OpWarm   OperationType = "warm"
)

// Operation is one record of the operation log. Hit is meaningful for OpGet only.
type Operation struct {
	Type      OperationType
	TenantID  string
	Namespace string
	Key       string
	Hit       bool
	Latency   time.Duration
	SizeBytes int64
	Timestamp time.Time
}

// OperationFilter narrows ListOperations. Empty fields match everything.
type OperationFilter struct {
	TenantID  string
	Namespace string
	Type      OperationType
}

func (f OperationFilter) Match(op *Operation) bool {
	if f.TenantID != "" && op.TenantID != f.TenantID {
		return false
	}
	if f.Namespace != "" && op.Namespace != f.Namespace {
		return false
	}
	if f.Type != "" && op.Type != f.Type {
		return false
	}
	return true
}
