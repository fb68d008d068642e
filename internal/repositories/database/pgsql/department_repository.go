package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
	"github.com/campusbooks/campus_ledger_app/internal/models"
	"github.com/campusbooks/campus_ledger_app/internal/utils/mapping"
)

const departmentColumns = `department_id, code, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxDepartmentRepository struct {
	BaseRepository
}

// newPgxDepartmentRepository creates a new repository for department data.
func newPgxDepartmentRepository(pool *pgxpool.Pool) portsrepo.DepartmentRepositoryFacade {
	return &PgxDepartmentRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.DepartmentRepositoryFacade = (*PgxDepartmentRepository)(nil)

func scanDepartment(row pgx.Row) (models.Department, error) {
	var m models.Department
	err := row.Scan(
		&m.DepartmentID,
		&m.Code,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveDepartment inserts a new department.
func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	m := mapping.ToModelDepartment(department)

	query := `
		INSERT INTO departments (` + departmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DepartmentID,
		m.Code,
		m.Name,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: department with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save department %s: %w", m.DepartmentID, err)
	}
	return nil
}

// FindDepartmentByID retrieves a department by its identifier.
func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE department_id = $1;`

	m, err := scanDepartment(r.Pool.QueryRow(ctx, query, departmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department by ID %s: %w", departmentID, err)
	}

	d := mapping.ToDomainDepartment(m)
	return &d, nil
}

// FindDepartmentByCode retrieves a department by its short code.
func (r *PgxDepartmentRepository) FindDepartmentByCode(ctx context.Context, code string) (*domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE code = $1;`

	m, err := scanDepartment(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department by code %s: %w", code, err)
	}

	d := mapping.ToDomainDepartment(m)
	return &d, nil
}

// ListDepartments retrieves departments ordered by name.
func (r *PgxDepartmentRepository) ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := make([]domain.Department, 0)
	for rows.Next() {
		m, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, mapping.ToDomainDepartment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}

	return departments, nil
}

// SetDepartmentActive flips the active flag.
func (r *PgxDepartmentRepository) SetDepartmentActive(ctx context.Context, departmentID string, active bool, userID string, now time.Time) error {
	query := `
		UPDATE departments
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE department_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, departmentID, active, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update department %s: %w", departmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
