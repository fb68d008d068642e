package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/campusbooks/campus_ledger_app/internal/utils/accounting"
)

func TestValidateLineAmounts(t *testing.T) {
	tests := []struct {
		name    string
		debit   decimal.Decimal
		credit  decimal.Decimal
		wantErr bool
	}{
		{"debit only", decimal.NewFromInt(100), decimal.Zero, false},
		{"credit only", decimal.Zero, decimal.NewFromInt(100), false},
		{"fractional debit", decimal.NewFromFloat(0.01), decimal.Zero, false},
		{"both set", decimal.NewFromInt(100), decimal.NewFromInt(100), true},
		{"neither set", decimal.Zero, decimal.Zero, true},
		{"negative debit", decimal.NewFromInt(-100), decimal.Zero, true},
		{"negative credit", decimal.Zero, decimal.NewFromInt(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateLineAmounts(tt.debit, tt.credit)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSumsAndBalance(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromInt(3000)},
		{Debit: decimal.NewFromFloat(0.50)},
		{Credit: decimal.NewFromFloat(3000.50)},
	}

	assert.True(t, accounting.SumDebits(lines).Equal(decimal.NewFromFloat(3000.50)))
	assert.True(t, accounting.SumCredits(lines).Equal(decimal.NewFromFloat(3000.50)))
	assert.True(t, accounting.IsBalanced(lines))
}

func TestIsBalancedDetectsMismatch(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromInt(3000)},
		{Credit: decimal.NewFromInt(2999)},
	}

	assert.False(t, accounting.IsBalanced(lines))
}

func TestIsBalancedEmptyLines(t *testing.T) {
	// Vacuously balanced; posting separately requires at least one line.
	assert.True(t, accounting.IsBalanced(nil))
}
