package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAllocationRows retrieves all active allocations for a fiscal year joined
// with department and account display data. Only stored columns are selected;
// the reporting service derives remaining, percentage and status.
func (r *PgxReportingRepository) GetAllocationRows(ctx context.Context, fiscalYear int) ([]domain.AllocationUtilization, error) {
	query := `
		SELECT b.allocation_id, b.department_id, d.name, b.account_id, a.account_code, a.name, b.fiscal_year, b.allocated, b.spent
		FROM budget_allocations b
		JOIN departments d ON d.department_id = b.department_id
		JOIN accounts a ON a.account_id = b.account_id
		WHERE b.fiscal_year = $1 AND b.is_active = TRUE
		ORDER BY d.name, a.account_code;
	`
	rows, err := r.Pool.Query(ctx, query, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation rows for year %d: %w", fiscalYear, err)
	}
	defer rows.Close()

	result := make([]domain.AllocationUtilization, 0)
	for rows.Next() {
		var row domain.AllocationUtilization
		err := rows.Scan(
			&row.AllocationID,
			&row.DepartmentID,
			&row.DepartmentName,
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.FiscalYear,
			&row.Allocated,
			&row.Spent,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", err)
	}

	return result, nil
}
