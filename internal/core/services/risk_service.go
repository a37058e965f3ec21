package services

import (
	"time"

	"github.com/quartzerp/glcore/internal/core/domain"
	portssvc "github.com/quartzerp/glcore/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Point weights for the individual risk signals. The score for a journal is the
// plain sum of the weights of every signal that fires.
const (
	weightManualJournal    = 10
	weightHighValue        = 20
	weightBackdated        = 15
	weightLatePosting      = 10
	weightReversal         = 10
	weightCorrectingEntry  = 10
	weightControlAccount   = 20
	weightApprovalOverride = 25
)

// Score thresholds for the LOW/MEDIUM/HIGH bands.
const (
	mediumBandFloor = 25
	highBandFloor   = 50
)

// RiskConfig carries the tunable inputs of the scoring engine.
type RiskConfig struct {
	HighValueThreshold   decimal.Decimal
	BackdateGraceDays    int
	LatePostingGraceDays int
}

// DefaultRiskConfig returns the configuration used when nothing is overridden.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		HighValueThreshold:   decimal.NewFromInt(100000),
		BackdateGraceDays:    3,
		LatePostingGraceDays: 5,
	}
}

// riskService scores journal snapshots. It holds no mutable state and performs
// no I/O, so the same input always yields the same assessment.
type riskService struct {
	cfg RiskConfig
}

// NewRiskService creates the risk scoring engine.
func NewRiskService(cfg RiskConfig) portssvc.RiskScorerSvc {
	return &riskService{cfg: cfg}
}

var _ portssvc.RiskScorerSvc = (*riskService)(nil)

// Score computes the point total and ordered flag set for a journal snapshot.
func (s *riskService) Score(input portssvc.RiskInput) domain.RiskAssessment {
	score := 0
	flags := make([]domain.RiskFlag, 0, 8)

	addFlag := func(flag domain.RiskFlag, weight int) {
		score += weight
		flags = append(flags, flag)
	}

	if input.Journal.Source == domain.SourceManual {
		addFlag(domain.RiskManualJournal, weightManualJournal)
	}

	if input.Amount.GreaterThanOrEqual(s.cfg.HighValueThreshold) {
		addFlag(domain.RiskHighValue, weightHighValue)
	}

	// Backdated: journal dated earlier than its creation by more than the grace window.
	backdateGrace := time.Duration(s.cfg.BackdateGraceDays) * 24 * time.Hour
	if input.Journal.CreatedAt.Sub(input.Journal.JournalDate) > backdateGrace {
		addFlag(domain.RiskBackdated, weightBackdated)
	}

	// Late posting: still unposted this far after the covering period ended.
	if !input.PeriodEnd.IsZero() {
		lateGrace := time.Duration(s.cfg.LatePostingGraceDays) * 24 * time.Hour
		if input.Now.Sub(input.PeriodEnd) > lateGrace {
			addFlag(domain.RiskLatePosting, weightLatePosting)
		}
	}

	if input.Journal.ReversalOfID != nil {
		addFlag(domain.RiskReversal, weightReversal)
	}

	if input.Journal.CorrectsJournalID != nil {
		addFlag(domain.RiskCorrectingEntry, weightCorrectingEntry)
	}

	for _, line := range input.Journal.Lines {
		if acc, ok := input.Accounts[line.AccountID]; ok && acc.IsControlAccount {
			addFlag(domain.RiskControlAccount, weightControlAccount)
			break
		}
	}

	if input.Journal.OverrideReason != "" {
		addFlag(domain.RiskApprovalOverride, weightApprovalOverride)
	}

	return domain.RiskAssessment{
		Score: score,
		Band:  bandForScore(score),
		Flags: flags,
	}
}

func bandForScore(score int) domain.RiskBand {
	switch {
	case score >= highBandFloor:
		return domain.RiskHigh
	case score >= mediumBandFloor:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
