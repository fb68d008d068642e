package services

import (
	"context"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/campusbooks/campus_ledger_app/internal/dto"
)

// BudgetReaderSvc defines read operations for budget allocation data
type BudgetReaderSvc interface {
	// GetAllocation retrieves an allocation by its identifier.
	GetAllocation(ctx context.Context, allocationID string) (*domain.BudgetAllocation, error)

	// GetUtilization computes the derived utilization view of an allocation:
	// allocated, spent, remaining, percentage (nil for zero allocations) and
	// status, from stored state.
	GetUtilization(ctx context.Context, allocationID string) (*domain.AllocationUtilization, error)

	// ListAllocations retrieves the utilization of every allocation in a
	// fiscal year.
	ListAllocations(ctx context.Context, fiscalYear int) ([]domain.AllocationUtilization, error)
}

// BudgetWriterSvc defines administrative write operations for budget allocations
type BudgetWriterSvc interface {
	// UpsertAllocation creates or updates the allocated ceiling for a
	// (department, account, fiscal year) key. Never touches spent.
	UpsertAllocation(ctx context.Context, req dto.UpsertAllocationRequest, userID string) (*domain.BudgetAllocation, error)

	// DeactivateAllocation marks an allocation inactive; future postings no
	// longer affect it.
	DeactivateAllocation(ctx context.Context, allocationID string, userID string) error
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
