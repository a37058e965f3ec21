package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quartzerp/glcore/internal/apperrors"
	"github.com/quartzerp/glcore/internal/core/domain"
	portsrepo "github.com/quartzerp/glcore/internal/core/ports/repositories"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/quartzerp/glcore/internal/middleware"
)

// ErrLastActiveAdmin is returned when deactivating or demoting would leave the
// tenant without any active admin.
var ErrLastActiveAdmin = fmt.Errorf("%w: cannot remove the last active admin", apperrors.ErrConflict)

// sodService resolves segregation-of-duties facts from the RBAC subsystem's data.
type sodService struct {
	userRepo portsrepo.UserRepositoryFacade
	sodRepo  portsrepo.SoDRepositoryFacade
	audit    portssvc.AuditRecorderSvc
}

// NewSoDService creates a new SoDResolver.
func NewSoDService(userRepo portsrepo.UserRepositoryFacade, sodRepo portsrepo.SoDRepositoryFacade, audit portssvc.AuditRecorderSvc) portssvc.SoDSvcFacade {
	return &sodService{userRepo: userRepo, sodRepo: sodRepo, audit: audit}
}

var _ portssvc.SoDSvcFacade = (*sodService)(nil)

// FindPreparer selects the first active user (oldest-created first) holding the
// journal create permission but neither approve nor post. It never falls back
// to an approver or poster identity.
func (s *sodService) FindPreparer(ctx context.Context, tenantID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	users, err := s.userRepo.ListActiveUsers(ctx, tenantID)
	if err != nil {
		logger.Error("Failed to list active users for preparer selection", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	for _, user := range users {
		if !user.HasPermission(domain.PermJournalCreate) {
			continue
		}
		if user.HasPermission(domain.PermJournalApprove) || user.HasPermission(domain.PermJournalPost) {
			continue
		}
		preparer := user
		logger.Debug("Preparer resolved", slog.String("user_id", preparer.UserID), slog.String("tenant_id", tenantID))
		return &preparer, nil
	}

	s.audit.Record(ctx, domain.AuditEvent{
		TenantID:   tenantID,
		EventType:  "SOD",
		EntityType: "tenant",
		EntityID:   tenantID,
		Action:     "FIND_PREPARER",
		Outcome:    domain.OutcomeBlocked,
		Reason:     "no active user holds create rights without approve/post rights",
		ActorID:    "system",
	})
	logger.Warn("No eligible preparer found", slog.String("tenant_id", tenantID))
	return nil, apperrors.ErrNoEligiblePreparer
}

// roleSetConflicts unions the permissions of the candidate roles and collects
// every configured SoD pair fully contained in that union.
func (s *sodService) roleSetConflicts(ctx context.Context, tenantID string, roleIDs []string) (map[string]struct{}, []domain.ConflictingPair, error) {
	roles, err := s.sodRepo.FindRolesByIDs(ctx, tenantID, roleIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch roles: %w", err)
	}
	if len(roles) != len(roleIDs) {
		return nil, nil, fmt.Errorf("%w: one or more roles do not exist", apperrors.ErrNotFound)
	}

	union := make(map[string]struct{})
	for _, role := range roles {
		for _, perm := range role.Permissions {
			union[perm] = struct{}{}
		}
	}

	rules, err := s.sodRepo.ListSoDRules(ctx, tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch SoD rules: %w", err)
	}

	var conflicts []domain.ConflictingPair
	for _, rule := range rules {
		_, hasFirst := union[rule.FirstPermission]
		_, hasSecond := union[rule.SecondPermission]
		if hasFirst && hasSecond {
			conflicts = append(conflicts, domain.ConflictingPair{
				RuleID:           rule.RuleID,
				FirstPermission:  rule.FirstPermission,
				SecondPermission: rule.SecondPermission,
			})
		}
	}
	return union, conflicts, nil
}

// ValidateRoleSet unions the permissions of the candidate roles and returns the
// configured SoD pairs fully contained in that union. A non-empty result is
// accompanied by ErrSoDConflict.
func (s *sodService) ValidateRoleSet(ctx context.Context, tenantID string, roleIDs []string) ([]domain.ConflictingPair, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, conflicts, err := s.roleSetConflicts(ctx, tenantID, roleIDs)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		s.audit.Record(ctx, domain.AuditEvent{
			TenantID:   tenantID,
			EventType:  "SOD",
			EntityType: "role_set",
			EntityID:   tenantID,
			Action:     "VALIDATE_ROLE_SET",
			Outcome:    domain.OutcomeBlocked,
			Reason:     fmt.Sprintf("%d forbidden permission pair(s) in combined role set", len(conflicts)),
			ActorID:    "system",
		})
		logger.Warn("Role set violates SoD rules", slog.Int("conflicts", len(conflicts)), slog.String("tenant_id", tenantID))
		return conflicts, apperrors.ErrSoDConflict
	}

	return nil, nil
}

// ValidateRoleAssignment runs the role-set rules for a concrete user and
// additionally refuses any assignment that would strip the admin permission
// from the tenant's last active admin. A self-demotion hits the same guard.
func (s *sodService) ValidateRoleAssignment(ctx context.Context, tenantID string, targetUserID string, roleIDs []string) ([]domain.ConflictingPair, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target, err := s.userRepo.FindUserByID(ctx, tenantID, targetUserID)
	if err != nil {
		return nil, err
	}

	union, conflicts, err := s.roleSetConflicts(ctx, tenantID, roleIDs)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		s.audit.Record(ctx, domain.AuditEvent{
			TenantID:   tenantID,
			EventType:  "SOD",
			EntityType: "user",
			EntityID:   targetUserID,
			Action:     "ASSIGN_ROLES",
			Outcome:    domain.OutcomeBlocked,
			Reason:     fmt.Sprintf("%d forbidden permission pair(s) in proposed role set", len(conflicts)),
			ActorID:    "system",
		})
		logger.Warn("Role assignment violates SoD rules", slog.Int("conflicts", len(conflicts)), slog.String("user_id", targetUserID))
		return conflicts, apperrors.ErrSoDConflict
	}

	_, keepsAdmin := union[domain.PermAdmin]
	if target.HasPermission(domain.PermAdmin) && !keepsAdmin {
		admins, err := s.userRepo.CountActiveAdmins(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to count active admins: %w", err)
		}
		if admins <= 1 {
			s.audit.Record(ctx, domain.AuditEvent{
				TenantID:   tenantID,
				EventType:  "SOD",
				EntityType: "user",
				EntityID:   targetUserID,
				Action:     "ASSIGN_ROLES",
				Outcome:    domain.OutcomeBlocked,
				Reason:     "assignment would demote the last active admin",
				ActorID:    "system",
			})
			logger.Warn("Role assignment would demote the last active admin", slog.String("user_id", targetUserID), slog.String("tenant_id", tenantID))
			return nil, ErrLastActiveAdmin
		}
	}

	return nil, nil
}

// DeactivateUser deactivates a user, refusing to remove the tenant's last
// active admin.
func (s *sodService) DeactivateUser(ctx context.Context, tenantID string, targetUserID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	target, err := s.userRepo.FindUserByID(ctx, tenantID, targetUserID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch user for deactivation", slog.String("error", err.Error()), slog.String("user_id", targetUserID))
		}
		return err
	}

	if target.HasPermission(domain.PermAdmin) {
		admins, err := s.userRepo.CountActiveAdmins(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to count active admins: %w", err)
		}
		if admins <= 1 {
			s.audit.Record(ctx, domain.AuditEvent{
				TenantID:   tenantID,
				EventType:  "SOD",
				EntityType: "user",
				EntityID:   targetUserID,
				Action:     "DEACTIVATE_USER",
				Outcome:    domain.OutcomeBlocked,
				Reason:     "target is the last active admin",
				ActorID:    actorID,
			})
			return ErrLastActiveAdmin
		}
	}

	if err := s.userRepo.DeactivateUser(ctx, tenantID, targetUserID, actorID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate user", slog.String("error", err.Error()), slog.String("user_id", targetUserID))
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEvent{
		TenantID:   tenantID,
		EventType:  "SOD",
		EntityType: "user",
		EntityID:   targetUserID,
		Action:     "DEACTIVATE_USER",
		Outcome:    domain.OutcomeSuccess,
		ActorID:    actorID,
	})
	logger.Info("User deactivated", slog.String("user_id", targetUserID), slog.String("tenant_id", tenantID))
	return nil
}
