package domain

// Permission codes consulted by the segregation-of-duties checks. The RBAC
// subsystem owns role administration; this core only consumes effective sets.
const (
	PermJournalCreate  = "journal:create"
	PermJournalApprove = "journal:approve"
	PermJournalPost    = "journal:post"
	PermPeriodClose    = "period:close"
	PermAdmin          = "admin"
)

// SoDRule is a tenant-scoped pair of permission codes that must never coexist
// in one user's effective permission set.
type SoDRule struct {
	RuleID           string `json:"ruleID"`
	TenantID         string `json:"tenantID"`
	FirstPermission  string `json:"firstPermission"`
	SecondPermission string `json:"secondPermission"`
	Description      string `json:"description,omitempty"`
	AuditFields
}

// ConflictingPair names the rule matched by a rejected role combination.
type ConflictingPair struct {
	RuleID           string `json:"ruleID"`
	FirstPermission  string `json:"firstPermission"`
	SecondPermission string `json:"secondPermission"`
}

// Role is a named permission bundle, as exposed by the RBAC subsystem.
type Role struct {
	RoleID      string   `json:"roleID"`
	TenantID    string   `json:"tenantID"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
