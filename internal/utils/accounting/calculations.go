package accounting

import (
	"fmt"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateLineAmounts checks the debit/credit pair of a journal line.
// Exactly one of the two must be positive; negatives are always rejected.
func ValidateLineAmounts(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("%w: amounts must be non-negative (debit %s, credit %s)",
			apperrors.ErrInvalidAmount, debit.String(), credit.String())
	}
	debitSet := debit.IsPositive()
	creditSet := credit.IsPositive()
	if debitSet == creditSet {
		return fmt.Errorf("%w: exactly one of debit/credit must be non-zero (debit %s, credit %s)",
			apperrors.ErrInvalidAmount, debit.String(), credit.String())
	}
	return nil
}

// SumDebits returns the total debit amount across the given lines.
func SumDebits(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}

// SumCredits returns the total credit amount across the given lines.
func SumCredits(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Credit)
	}
	return total
}

// IsBalanced reports whether debits equal credits across the given lines.
// An empty line set is balanced (but not postable; posting requires at least
// one line, which callers enforce separately).
func IsBalanced(lines []domain.JournalLine) bool {
	return SumDebits(lines).Equal(SumCredits(lines))
}
