package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the append-only audit log.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveEvent appends one audit event. The table has no update or delete path.
func (r *PgxAuditRepository) SaveEvent(ctx context.Context, event domain.AuditEvent) error {
	query := `
		INSERT INTO audit_events (
			event_id, tenant_id, event_type, entity_type, entity_id, action,
			outcome, reason, actor_id, permission_used, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	var reason, permissionUsed *string
	if event.Reason != "" {
		reason = &event.Reason
	}
	if event.PermissionUsed != "" {
		permissionUsed = &event.PermissionUsed
	}
	_, err := r.Pool.Exec(ctx, query,
		event.EventID, event.TenantID, event.EventType, event.EntityType, event.EntityID, event.Action,
		event.Outcome, reason, event.ActorID, permissionUsed, event.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit event "+event.EventID, err)
	}
	return nil
}
