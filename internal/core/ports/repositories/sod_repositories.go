package repositories

import (
	"context"

	"github.com/quartzerp/glcore/internal/core/domain"
)

// SoDRuleReader defines read operations for segregation-of-duties configuration.
type SoDRuleReader interface {
	// ListSoDRules retrieves the tenant's configured forbidden permission pairs.
	ListSoDRules(ctx context.Context, tenantID string) ([]domain.SoDRule, error)

	// FindRolesByIDs retrieves roles with their permission sets.
	FindRolesByIDs(ctx context.Context, tenantID string, roleIDs []string) ([]domain.Role, error)
}

// SoDRepositoryFacade combines SoD repository interfaces.
type SoDRepositoryFacade interface {
	SoDRuleReader
}
