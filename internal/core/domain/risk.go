package domain

// RiskFlag names one weighted signal contributing to a journal's risk score.
type RiskFlag string

const (
	RiskManualJournal    RiskFlag = "MANUAL_JOURNAL"
	RiskHighValue        RiskFlag = "HIGH_VALUE"
	RiskBackdated        RiskFlag = "BACKDATED"
	RiskLatePosting      RiskFlag = "LATE_POSTING"
	RiskReversal         RiskFlag = "REVERSAL"
	RiskCorrectingEntry  RiskFlag = "CORRECTING_ENTRY"
	RiskControlAccount   RiskFlag = "CONTROL_ACCOUNT"
	RiskApprovalOverride RiskFlag = "APPROVAL_OVERRIDE"
)

// RiskBand buckets a score into a reviewer-facing severity.
type RiskBand string

const (
	RiskLow    RiskBand = "LOW"
	RiskMedium RiskBand = "MEDIUM"
	RiskHigh   RiskBand = "HIGH"
)

// RiskAssessment is the deterministic result of scoring one journal snapshot.
type RiskAssessment struct {
	Score int        `json:"score"`
	Band  RiskBand   `json:"band"`
	Flags []RiskFlag `json:"flags"`
}
