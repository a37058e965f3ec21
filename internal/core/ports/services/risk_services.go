package services

import (
	"time"

	"github.com/quartzerp/glcore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RiskInput is the journal snapshot handed to the scoring engine. It carries
// everything the score depends on so scoring stays a pure function.
type RiskInput struct {
	Journal   domain.JournalEntry
	Amount    decimal.Decimal
	Accounts  map[string]domain.Account // accounts referenced by the journal's lines
	PeriodEnd time.Time
	Now       time.Time
}

// RiskScorerSvc computes a deterministic risk score and flag set for a journal.
// The score is recomputed from scratch whenever an entry reaches REVIEWED.
type RiskScorerSvc interface {
	Score(input RiskInput) domain.RiskAssessment
}
