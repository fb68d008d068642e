package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
	"github.com/campusbooks/campus_ledger_app/internal/models"
	"github.com/campusbooks/campus_ledger_app/internal/utils/mapping"
)

const allocationColumns = `allocation_id, department_id, account_id, fiscal_year, allocated, spent, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget allocation data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanAllocation(row pgx.Row) (models.BudgetAllocation, error) {
	var m models.BudgetAllocation
	err := row.Scan(
		&m.AllocationID,
		&m.DepartmentID,
		&m.AccountID,
		&m.FiscalYear,
		&m.Allocated,
		&m.Spent,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindAllocationByID retrieves an allocation by its identifier.
func (r *PgxBudgetRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.BudgetAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM budget_allocations WHERE allocation_id = $1;`

	m, err := scanAllocation(r.Pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find allocation by ID %s: %w", allocationID, err)
	}

	d := mapping.ToDomainBudgetAllocation(m)
	return &d, nil
}

// FindAllocationByKey retrieves an allocation by its natural key.
func (r *PgxBudgetRepository) FindAllocationByKey(ctx context.Context, departmentID string, accountID string, fiscalYear int) (*domain.BudgetAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM budget_allocations
		WHERE department_id = $1 AND account_id = $2 AND fiscal_year = $3;
	`
	m, err := scanAllocation(r.Pool.QueryRow(ctx, query, departmentID, accountID, fiscalYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find allocation for department %s, account %s, year %d: %w", departmentID, accountID, fiscalYear, err)
	}

	d := mapping.ToDomainBudgetAllocation(m)
	return &d, nil
}

// ListAllocationsByYear retrieves allocations for a fiscal year ordered by
// department then account, optionally restricted to active ones.
func (r *PgxBudgetRepository) ListAllocationsByYear(ctx context.Context, fiscalYear int, activeOnly bool) ([]domain.BudgetAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM budget_allocations WHERE fiscal_year = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY department_id, account_id;`

	rows, err := r.Pool.Query(ctx, query, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for year %d: %w", fiscalYear, err)
	}
	defer rows.Close()

	allocations := make([]domain.BudgetAllocation, 0)
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		allocations = append(allocations, mapping.ToDomainBudgetAllocation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", err)
	}

	return allocations, nil
}

// HasActiveAllocations reports whether a department still has active allocations.
func (r *PgxBudgetRepository) HasActiveAllocations(ctx context.Context, departmentID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM budget_allocations WHERE department_id = $1 AND is_active = TRUE);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, departmentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check allocations for department %s: %w", departmentID, err)
	}
	return exists, nil
}

// UpsertAllocation creates the allocation or updates its allocated ceiling on
// a natural-key conflict. Spent is written only on the initial insert (as
// zero) and deliberately left out of the conflict update: the posting
// transaction is the only writer of spent after that.
func (r *PgxBudgetRepository) UpsertAllocation(ctx context.Context, allocation domain.BudgetAllocation) (*domain.BudgetAllocation, error) {
	m := mapping.ToModelBudgetAllocation(allocation)

	query := `
		INSERT INTO budget_allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9, $10)
		ON CONFLICT (department_id, account_id, fiscal_year)
		DO UPDATE SET allocated = EXCLUDED.allocated, is_active = TRUE, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + allocationColumns + `;
	`
	stored, err := scanAllocation(r.Pool.QueryRow(ctx, query,
		m.AllocationID,
		m.DepartmentID,
		m.AccountID,
		m.FiscalYear,
		m.Allocated,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert allocation for department %s, account %s, year %d: %w", m.DepartmentID, m.AccountID, m.FiscalYear, err)
	}

	d := mapping.ToDomainBudgetAllocation(stored)
	return &d, nil
}

// SetAllocationActive flips the active flag.
func (r *PgxBudgetRepository) SetAllocationActive(ctx context.Context, allocationID string, active bool, userID string, now time.Time) error {
	query := `
		UPDATE budget_allocations
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE allocation_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, allocationID, active, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update allocation %s: %w", allocationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
