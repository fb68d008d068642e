package domain

import "github.com/shopspring/decimal"

// AllocationUtilization is the derived view of one budget allocation,
// recomputed on demand from the stored allocated/spent pair.
type AllocationUtilization struct {
	AllocationID   string            `json:"allocationID"`
	DepartmentID   string            `json:"departmentID"`
	DepartmentName string            `json:"departmentName"`
	AccountID      string            `json:"accountID"`
	AccountCode    string            `json:"accountCode"`
	AccountName    string            `json:"accountName"`
	FiscalYear     int               `json:"fiscalYear"`
	Allocated      decimal.Decimal   `json:"allocated"`
	Spent          decimal.Decimal   `json:"spent"`
	Remaining      decimal.Decimal   `json:"remaining"`
	Percentage     *decimal.Decimal  `json:"percentage"` // nil when allocated is zero
	Status         UtilizationStatus `json:"status"`
}

// DepartmentBudget is the per-department slice of a budget summary.
type DepartmentBudget struct {
	DepartmentID   string          `json:"departmentID"`
	DepartmentName string          `json:"departmentName"`
	Allocated      decimal.Decimal `json:"allocated"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
}

// BudgetSummary aggregates all active allocations of a fiscal year.
// It is a pure function of current store state; nothing in it is cached.
type BudgetSummary struct {
	FiscalYear     int                     `json:"fiscalYear"`
	TotalAllocated decimal.Decimal         `json:"totalAllocated"`
	TotalSpent     decimal.Decimal         `json:"totalSpent"`
	TotalRemaining decimal.Decimal         `json:"totalRemaining"`
	ExceededCount  int                     `json:"exceededCount"`
	Departments    []DepartmentBudget      `json:"departments"` // Sorted by department name
	Critical       []AllocationUtilization `json:"critical"`    // HIGH/EXCEEDED, pct desc
}
