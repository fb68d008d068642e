// Package budgeting holds the single implementation of budget utilization
// classification. Every consumer (budget service, reporting, handlers) derives
// percentage and status through this package so thresholds are applied
// consistently everywhere they are shown.
package budgeting

import (
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Thresholds are the utilization percentage boundaries between statuses.
// They are configuration, not business law; defaults follow the standard
// 80/95 split.
type Thresholds struct {
	Moderate decimal.Decimal // below this: HEALTHY
	High     decimal.Decimal // below this: MODERATE; at or above, up to 100: HIGH
}

// DefaultThresholds returns the standard 80/95 thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Moderate: decimal.NewFromInt(80),
		High:     decimal.NewFromInt(95),
	}
}

var hundred = decimal.NewFromInt(100)

// Percentage returns spent/allocated*100, or nil when allocated is zero
// (division by zero is reported as "no percentage", never computed).
// The result is rounded to two decimal places.
func Percentage(allocated, spent decimal.Decimal) *decimal.Decimal {
	if allocated.IsZero() {
		return nil
	}
	pct := spent.Div(allocated).Mul(hundred).Round(2)
	return &pct
}

// Classify returns the utilization status for the given allocated/spent pair.
//
// HEALTHY  < Moderate
// MODERATE >= Moderate, < High
// HIGH     >= High, <= 100
// EXCEEDED > 100
//
// The boundaries are applied to the same two-decimal percentage Percentage
// returns, so the displayed percentage and the status can never contradict
// each other (79.999% displays as 80.00 and classifies MODERATE).
//
// A zero allocation with zero spend is HEALTHY; a zero allocation with any
// spend is EXCEEDED (anything spent against nothing allocated is over budget).
func Classify(allocated, spent decimal.Decimal, t Thresholds) domain.UtilizationStatus {
	pct := Percentage(allocated, spent)
	if pct == nil {
		if spent.IsPositive() {
			return domain.UtilizationExceeded
		}
		return domain.UtilizationHealthy
	}
	switch {
	case pct.GreaterThan(hundred):
		return domain.UtilizationExceeded
	case pct.GreaterThanOrEqual(t.High):
		return domain.UtilizationHigh
	case pct.GreaterThanOrEqual(t.Moderate):
		return domain.UtilizationModerate
	default:
		return domain.UtilizationHealthy
	}
}

// Utilize fills the derived fields of an AllocationUtilization from an
// allocation's stored state.
func Utilize(a domain.BudgetAllocation, t Thresholds) domain.AllocationUtilization {
	return domain.AllocationUtilization{
		AllocationID: a.AllocationID,
		DepartmentID: a.DepartmentID,
		AccountID:    a.AccountID,
		FiscalYear:   a.FiscalYear,
		Allocated:    a.Allocated,
		Spent:        a.Spent,
		Remaining:    a.Remaining(),
		Percentage:   Percentage(a.Allocated, a.Spent),
		Status:       Classify(a.Allocated, a.Spent, t),
	}
}
