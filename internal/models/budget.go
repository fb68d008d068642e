package models

import "github.com/shopspring/decimal"

// BudgetAllocation is the database row shape for the budget_allocations table.
// The (department_id, account_id, fiscal_year) triple is unique.
type BudgetAllocation struct {
	AllocationID string          `json:"allocationID"`
	DepartmentID string          `json:"departmentID"`
	AccountID    string          `json:"accountID"`
	FiscalYear   int             `json:"fiscalYear"`
	Allocated    decimal.Decimal `json:"allocated"`
	Spent        decimal.Decimal `json:"spent"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
