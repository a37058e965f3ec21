package services

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
)

// SoDSvcFacade enforces segregation-of-duties facts for the posting engine.
type SoDSvcFacade interface {
	// FindPreparer selects the oldest-created active user who may create journals
	// but holds neither the approve nor the post permission. Used to attribute
	// system-generated journals to a human preparer distinct from any approver.
	// Fails with ErrNoEligiblePreparer rather than falling back to an approver.
	FindPreparer(ctx context.Context, tenantID string) (*domain.User, error)

	// ValidateRoleSet unions the permissions of the candidate roles and returns
	// every configured SoD rule pair fully contained in that union. A non-empty
	// result means the combination is forbidden.
	ValidateRoleSet(ctx context.Context, tenantID string, roleIDs []string) ([]domain.ConflictingPair, error)

	// ValidateRoleAssignment runs the role-set rules for a concrete user and
	// additionally refuses any assignment that would strip the admin permission
	// from the tenant's last active admin, self-demotion included.
	ValidateRoleAssignment(ctx context.Context, tenantID string, targetUserID string, roleIDs []string) ([]domain.ConflictingPair, error)

	// DeactivateUser deactivates a user, refusing to remove the last active admin.
	DeactivateUser(ctx context.Context, tenantID string, targetUserID string, actorID string) error
}
