package accounting

import (
	"errors"
	"fmt"

	"github.com/quartzerp/glcore/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrMinLines is returned when a journal has fewer than two lines.
	ErrMinLines = errors.New("journal must have at least two lines")
	// ErrUnbalanced is returned when total debits do not equal total credits.
	ErrUnbalanced = errors.New("journal debits do not equal credits")
	// ErrOneSidedLine is returned when a line does not carry exactly one non-zero side.
	ErrOneSidedLine = errors.New("exactly one of debit or credit must be non-zero")
	// ErrNegativeAmount is returned when a line carries a negative amount.
	ErrNegativeAmount = errors.New("line amounts must be non-negative")
)

// SumDebits returns the total of the debit side across all lines.
func SumDebits(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}

// SumCredits returns the total of the credit side across all lines.
func SumCredits(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Credit)
	}
	return total
}

// ValidateLine checks the per-line invariants: both sides non-negative and
// exactly one side non-zero.
func ValidateLine(line domain.JournalLine) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("%w: line %s", ErrNegativeAmount, line.LineID)
	}
	debitSet := !line.Debit.IsZero()
	creditSet := !line.Credit.IsZero()
	if debitSet == creditSet {
		return fmt.Errorf("%w: line %s", ErrOneSidedLine, line.LineID)
	}
	return nil
}

// ValidateBalanced checks the whole-entry invariants: at least two lines, each
// line valid, and sum(debit) exactly equal to sum(credit). Equality is exact;
// no rounding slack is tolerated.
func ValidateBalanced(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return ErrMinLines
	}
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
	}
	debits := SumDebits(lines)
	credits := SumCredits(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits are %s, credits are %s", ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}

// JournalAmount computes the economic value of a balanced journal. For a
// balanced entry the debit side total represents the money moved.
func JournalAmount(lines []domain.JournalLine) decimal.Decimal {
	return SumDebits(lines)
}
