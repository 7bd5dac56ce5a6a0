package ports

import (
	"context"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
)

// AuditRecorder accepts login attempts for asynchronous persistence.
// Record must not block the caller.
type AuditRecorder interface {
	Record(attempt domain.LoginAttempt)
}

// AuditRepository persists login attempts.
type AuditRepository interface {
	InsertAttempt(ctx context.Context, attempt *domain.LoginAttempt) error
}
