package domain

import "github.com/shopspring/decimal"

// UtilizationStatus classifies how much of an allocation has been consumed.
// The thresholds live in utils/budgeting so every consumer derives the same
// classification from the same configuration.
type UtilizationStatus string

const (
	UtilizationHealthy  UtilizationStatus = "HEALTHY"
	UtilizationModerate UtilizationStatus = "MODERATE"
	UtilizationHigh     UtilizationStatus = "HIGH"
	UtilizationExceeded UtilizationStatus = "EXCEEDED"
)

// BudgetAllocation represents the budget ceiling for one
// (department, account, fiscal year) combination.
//
// Allocated is set by administrative action. Spent is derived: it equals the
// sum of posted debit amounts on journal lines matching the allocation key
// within the fiscal year, and is adjusted only by the posting coordinator as
// part of posting or cancelling an entry. Remaining may go negative;
// over-budget is representable, not rejected.
type BudgetAllocation struct {
	AllocationID string          `json:"allocationID"` // Primary Key (UUID)
	DepartmentID string          `json:"departmentID"` // Composite natural key...
	AccountID    string          `json:"accountID"`    // ...
	FiscalYear   int             `json:"fiscalYear"`   // ...
	Allocated    decimal.Decimal `json:"allocated"`
	Spent        decimal.Decimal `json:"spent"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// Remaining returns allocated minus spent. May be negative.
func (a BudgetAllocation) Remaining() decimal.Decimal {
	return a.Allocated.Sub(a.Spent)
}

// BudgetDelta is one spent adjustment computed by the posting coordinator:
// the summed debit amount a posted entry contributes to the allocation
// identified by the (department, account, fiscal year) key. Reversal applies
// the same deltas with the opposite sign.
type BudgetDelta struct {
	DepartmentID string
	AccountID    string
	FiscalYear   int
	Amount       decimal.Decimal
}
