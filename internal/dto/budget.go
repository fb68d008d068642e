package dto

import (
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertAllocationRequest defines the payload for creating or updating a
// budget allocation ceiling. Spent is derived and cannot be set here.
type UpsertAllocationRequest struct {
	DepartmentID string          `json:"departmentID" binding:"required"`
	AccountID    string          `json:"accountID" binding:"required"`
	FiscalYear   int             `json:"fiscalYear" binding:"required"`
	Allocated    decimal.Decimal `json:"allocated" binding:"required"`
}

// AllocationResponse defines the data returned for a budget allocation,
// including the derived utilization fields.
type AllocationResponse struct {
	AllocationID string           `json:"allocationID"`
	DepartmentID string           `json:"departmentID"`
	AccountID    string           `json:"accountID"`
	FiscalYear   int              `json:"fiscalYear"`
	Allocated    decimal.Decimal  `json:"allocated"`
	Spent        decimal.Decimal  `json:"spent"`
	Remaining    decimal.Decimal  `json:"remaining"`
	Percentage   *decimal.Decimal `json:"percentage"` // null when allocated is zero
	Status       string           `json:"status"`
	IsActive     bool             `json:"isActive"`
}

// ListAllocationsResponse is the listing of allocations for a fiscal year.
type ListAllocationsResponse struct {
	FiscalYear  int                  `json:"fiscalYear"`
	Allocations []AllocationResponse `json:"allocations"`
}

// ToAllocationResponse converts an allocation plus its derived utilization
// into the response DTO.
func ToAllocationResponse(a *domain.BudgetAllocation, u *domain.AllocationUtilization) AllocationResponse {
	return AllocationResponse{
		AllocationID: a.AllocationID,
		DepartmentID: a.DepartmentID,
		AccountID:    a.AccountID,
		FiscalYear:   a.FiscalYear,
		Allocated:    a.Allocated,
		Spent:        a.Spent,
		Remaining:    u.Remaining,
		Percentage:   u.Percentage,
		Status:       string(u.Status),
		IsActive:     a.IsActive,
	}
}
