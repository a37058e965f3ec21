package repositories

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
)

// AuditWriter defines the append-only audit event sink.
type AuditWriter interface {
	// SaveEvent appends one audit event. Callers treat failures as best-effort.
	SaveEvent(ctx context.Context, event domain.AuditEvent) error
}

// AuditRepositoryFacade combines audit repository interfaces.
type AuditRepositoryFacade interface {
	AuditWriter
}
