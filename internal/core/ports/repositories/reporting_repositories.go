package repositories

import (
	"context"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
)

// ReportingRepository defines the read-only queries behind the reporting
// aggregator. Results are raw stored state; derived fields (percentage,
// status, totals) are computed by the reporting service on every call.
type ReportingRepository interface {
	// GetAllocationRows retrieves all active allocations for a fiscal year
	// joined with department and account display data, ordered by department
	// name then account code.
	GetAllocationRows(ctx context.Context, fiscalYear int) ([]domain.AllocationUtilization, error)
}
