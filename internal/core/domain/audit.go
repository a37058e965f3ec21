package domain

import "time"

// AuditOutcome classifies how an audited action concluded.
type AuditOutcome string

const (
	OutcomeSuccess AuditOutcome = "SUCCESS"
	OutcomeBlocked AuditOutcome = "BLOCKED"
	OutcomeFailed  AuditOutcome = "FAILED"
)

// AuditEvent is one append-only entry in the audit trail. Blocked and failed
// actions are recorded here before the error surfaces to the caller.
type AuditEvent struct {
	EventID        string       `json:"eventID"`
	TenantID       string       `json:"tenantID"`
	EventType      string       `json:"eventType"`
	EntityType     string       `json:"entityType"`
	EntityID       string       `json:"entityID"`
	Action         string       `json:"action"`
	Outcome        AuditOutcome `json:"outcome"`
	Reason         string       `json:"reason,omitempty"`
	ActorID        string       `json:"actorID"`
	PermissionUsed string       `json:"permissionUsed,omitempty"`
	OccurredAt     time.Time    `json:"occurredAt"`
}
