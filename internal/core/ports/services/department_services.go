package services

import (
	"context"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/campusbooks/campus_ledger_app/internal/dto"
)

// DepartmentReaderSvc defines read operations for department data
type DepartmentReaderSvc interface {
	// GetDepartmentByID retrieves a department by its identifier.
	GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// ListDepartments retrieves departments ordered by name.
	ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error)
}

// DepartmentWriterSvc defines write operations for department data
type DepartmentWriterSvc interface {
	// CreateDepartment persists a new department.
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error)

	// DeactivateDepartment marks a department inactive. Refused while the
	// department still has active budget allocations.
	DeactivateDepartment(ctx context.Context, departmentID string, userID string) error
}

// DepartmentSvcFacade combines all department-related service interfaces
type DepartmentSvcFacade interface {
	DepartmentReaderSvc
	DepartmentWriterSvc
}
