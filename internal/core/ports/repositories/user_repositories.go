package repositories

import (
	"context"
	"time"

	"github.com/quartzerp/glcore/internal/core/domain"
)

// UserReader defines read operations over the RBAC subsystem's user facts.
type UserReader interface {
	// FindUserByID retrieves a user with their effective permission set.
	FindUserByID(ctx context.Context, tenantID string, userID string) (*domain.User, error)

	// ListActiveUsers retrieves active users with effective permissions,
	// ordered deterministically by creation time (oldest first) then user ID.
	ListActiveUsers(ctx context.Context, tenantID string) ([]domain.User, error)

	// CountActiveAdmins counts active users holding the admin permission.
	CountActiveAdmins(ctx context.Context, tenantID string) (int, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	// SaveUser inserts a new user. A duplicate (tenant, email) yields ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// DeactivateUser soft-deactivates a user.
	DeactivateUser(ctx context.Context, tenantID string, userID string, actorID string, at time.Time) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
