// Package fiscal defines how calendar dates map to fiscal years.
package fiscal

import (
	"fmt"
	"time"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
)

const (
	// MinYear and MaxYear bound the fiscal years the engine accepts.
	MinYear = 1900
	MaxYear = 9999
)

// YearOf returns the fiscal year a given entry date belongs to.
// The engine uses calendar-year fiscal years: FY2025 is Jan 1 to Dec 31 2025.
func YearOf(date time.Time) int {
	return date.Year()
}

// ValidateYear checks that a fiscal year input is well formed.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: %d (expected %d-%d)", apperrors.ErrInvalidFiscalYear, year, MinYear, MaxYear)
	}
	return nil
}
