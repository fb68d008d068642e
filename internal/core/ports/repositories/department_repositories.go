package repositories

import (
	"context"
	"time"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
)

// DepartmentReader defines read operations for department data
type DepartmentReader interface {
	// FindDepartmentByID retrieves a specific department by its identifier.
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// FindDepartmentByCode retrieves a department by its short code.
	FindDepartmentByCode(ctx context.Context, code string) (*domain.Department, error)

	// ListDepartments retrieves departments ordered by name.
	ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error)
}

// DepartmentWriter defines write operations for department data
type DepartmentWriter interface {
	// SaveDepartment persists a new department. Fails with ErrDuplicate on a code clash.
	SaveDepartment(ctx context.Context, department domain.Department) error

	// SetDepartmentActive flips the active flag.
	SetDepartmentActive(ctx context.Context, departmentID string, active bool, userID string, now time.Time) error
}

// DepartmentRepositoryFacade combines all department-related repository interfaces
type DepartmentRepositoryFacade interface {
	DepartmentReader
	DepartmentWriter
}
