package domain

import "slices"

// User is the RBAC subsystem's view of a user that this core consumes:
// identity, activity flag and the effective (role-unioned) permission set.
type User struct {
	UserID               string   `json:"userID"`
	TenantID             string   `json:"tenantID"`
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	IsActive             bool     `json:"isActive"`
	EffectivePermissions []string `json:"effectivePermissions"`
	AuditFields
}

// HasPermission reports whether the user's effective set contains the permission.
func (u User) HasPermission(perm string) bool {
	return slices.Contains(u.EffectivePermissions, perm)
}
