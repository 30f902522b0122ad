package engine

import (
	"errors"

	"github.com/Borislavv/go-ash-partition/internal/eviction"
	"github.com/Borislavv/go-ash-partition/internal/warming"
	perrors "github.com/jmgilman/go/errors"
)

var (
	ErrTenantNotConfigured = errors.New("tenant is not configured")
	ErrInvalidTenantConfig = errors.New("invalid tenant config")
	ErrUnsupportedPolicy   = eviction.ErrUnsupportedPolicy
	ErrJobNotFound         = warming.ErrJobNotFound
	ErrJobTerminal         = warming.ErrJobTerminal
)

// codeOf maps a sentinel to the code carried by the caller-facing error.
func codeOf(err error) perrors.ErrorCode {
	switch {
	case errors.Is(err, ErrTenantNotConfigured), errors.Is(err, ErrJobNotFound):
		return perrors.CodeNotFound
	case errors.Is(err, ErrUnsupportedPolicy):
		return perrors.CodeNotImplemented
	case errors.Is(err, ErrInvalidTenantConfig), errors.Is(err, eviction.ErrUnknownPolicy):
		return perrors.CodeInvalidConfig
	case errors.Is(err, ErrJobTerminal):
		return perrors.CodeConflict
	}
	return perrors.CodeInternal
}

func tenantErr(err error, msg, tenantID, namespace string) error {
	return perrors.WrapWithContext(err, codeOf(err), msg, map[string]interface{}{
		"tenant_id": tenantID,
		"namespace": namespace,
	})
}

func jobErr(err error, msg, jobID string) error {
	return perrors.WrapWithContext(err, codeOf(err), msg, map[string]interface{}{
		"job_id": jobID,
	})
}
