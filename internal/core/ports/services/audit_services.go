package services

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
)

// AuditRecorderSvc is the append-only audit sink. Record must never block and
// never fails the primary operation; delivery is best-effort by contract.
type AuditRecorderSvc interface {
	Record(ctx context.Context, event domain.AuditEvent)

	// Close drains buffered events. Called once at shutdown.
	Close(ctx context.Context) error
}
