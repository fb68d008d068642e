package repositories

import (
	"context"
	"time"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
)

// BudgetAllocationReader defines read operations for budget allocation data
type BudgetAllocationReader interface {
	// FindAllocationByID retrieves a specific allocation by its identifier.
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.BudgetAllocation, error)

	// FindAllocationByKey retrieves an allocation by its natural key.
	FindAllocationByKey(ctx context.Context, departmentID string, accountID string, fiscalYear int) (*domain.BudgetAllocation, error)

	// ListAllocationsByYear retrieves allocations for a fiscal year,
	// optionally restricted to active ones.
	ListAllocationsByYear(ctx context.Context, fiscalYear int, activeOnly bool) ([]domain.BudgetAllocation, error)

	// HasActiveAllocations reports whether a department still has active allocations.
	HasActiveAllocations(ctx context.Context, departmentID string) (bool, error)
}

// BudgetAllocationWriter defines administrative write operations for budget
// allocations. Note there is deliberately no way to write the spent column
// here: spent is adjusted only inside the posting transaction
// (JournalEntryWriter.MarkEntryPosted / MarkEntryCancelled).
type BudgetAllocationWriter interface {
	// UpsertAllocation creates the allocation or updates its allocated ceiling.
	// Never touches spent. Returns the stored allocation.
	UpsertAllocation(ctx context.Context, allocation domain.BudgetAllocation) (*domain.BudgetAllocation, error)

	// SetAllocationActive flips the active flag.
	SetAllocationActive(ctx context.Context, allocationID string, active bool, userID string, now time.Time) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetAllocationReader
	BudgetAllocationWriter
}
