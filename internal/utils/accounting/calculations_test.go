package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzerp/glcore/internal/core/domain"
	"github.com/quartzerp/glcore/internal/utils/accounting"
)

func line(debit, credit string) domain.JournalLine {
	return domain.JournalLine{
		LineID: "line",
		Debit:  decimal.RequireFromString(debit),
		Credit: decimal.RequireFromString(credit),
	}
}

func TestValidateBalancedAcceptsBalancedEntry(t *testing.T) {
	lines := []domain.JournalLine{
		line("100.50", "0"),
		line("0", "100.50"),
	}

	require.NoError(t, accounting.ValidateBalanced(lines))
}

func TestValidateBalancedRequiresTwoLines(t *testing.T) {
	err := accounting.ValidateBalanced([]domain.JournalLine{line("100", "0")})
	assert.ErrorIs(t, err, accounting.ErrMinLines)

	err = accounting.ValidateBalanced(nil)
	assert.ErrorIs(t, err, accounting.ErrMinLines)
}

func TestValidateBalancedRejectsUnbalancedTotals(t *testing.T) {
	lines := []domain.JournalLine{
		line("100", "0"),
		line("0", "99.99"),
	}

	err := accounting.ValidateBalanced(lines)
	assert.ErrorIs(t, err, accounting.ErrUnbalanced)
}

func TestValidateBalancedToleratesNoRoundingSlack(t *testing.T) {
	lines := []domain.JournalLine{
		line("0.01", "0"),
		line("0", "0.0100000001"),
	}

	err := accounting.ValidateBalanced(lines)
	assert.ErrorIs(t, err, accounting.ErrUnbalanced)
}

func TestValidateLineRejectsBothSidesSet(t *testing.T) {
	err := accounting.ValidateLine(line("50", "50"))
	assert.ErrorIs(t, err, accounting.ErrOneSidedLine)
}

func TestValidateLineRejectsBothSidesZero(t *testing.T) {
	err := accounting.ValidateLine(line("0", "0"))
	assert.ErrorIs(t, err, accounting.ErrOneSidedLine)
}

func TestValidateLineRejectsNegativeAmounts(t *testing.T) {
	err := accounting.ValidateLine(line("-50", "0"))
	assert.ErrorIs(t, err, accounting.ErrNegativeAmount)
}

func TestJournalAmountIsDebitTotal(t *testing.T) {
	lines := []domain.JournalLine{
		line("250", "0"),
		line("750", "0"),
		line("0", "1000"),
	}

	assert.True(t, accounting.JournalAmount(lines).Equal(decimal.NewFromInt(1000)))
}
