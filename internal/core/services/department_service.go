package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusbooks/campus_ledger_app/internal/core/ports/services"
	"github.com/campusbooks/campus_ledger_app/internal/dto"
)

// departmentService provides department operations.
type departmentService struct {
	BaseService
	departmentRepo portsrepo.DepartmentRepositoryFacade
	budgetRepo     portsrepo.BudgetAllocationReader
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(departmentRepo portsrepo.DepartmentRepositoryFacade, budgetRepo portsrepo.BudgetAllocationReader) portssvc.DepartmentSvcFacade {
	return &departmentService{departmentRepo: departmentRepo, budgetRepo: budgetRepo}
}

var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

// CreateDepartment persists a new department.
func (s *departmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error) {
	if req.Code == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: department code and name are required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	department := domain.Department{
		DepartmentID: uuid.NewString(),
		Code:         req.Code,
		Name:         req.Name,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.departmentRepo.SaveDepartment(ctx, department); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: department code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		s.LogError(ctx, err, "Failed to save department", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save department: %w", err)
	}

	s.LogInfo(ctx, "Department created", slog.String("department_id", department.DepartmentID), slog.String("code", department.Code))
	return &department, nil
}

// GetDepartmentByID retrieves a department by its identifier.
func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	department, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find department", slog.String("department_id", departmentID))
		}
		return nil, err
	}
	return department, nil
}

// ListDepartments retrieves departments ordered by name.
func (s *departmentService) ListDepartments(ctx context.Context, includeInactive bool) ([]domain.Department, error) {
	departments, err := s.departmentRepo.ListDepartments(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list departments")
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

// DeactivateDepartment marks a department inactive. Refused while the
// department still has active budget allocations.
func (s *departmentService) DeactivateDepartment(ctx context.Context, departmentID string, userID string) error {
	if _, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID); err != nil {
		return err
	}

	hasAllocations, err := s.budgetRepo.HasActiveAllocations(ctx, departmentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check department allocations", slog.String("department_id", departmentID))
		return fmt.Errorf("failed to check department allocations: %w", err)
	}
	if hasAllocations {
		return fmt.Errorf("%w: department has active budget allocations", apperrors.ErrValidation)
	}

	if err := s.departmentRepo.SetDepartmentActive(ctx, departmentID, false, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate department", slog.String("department_id", departmentID))
		return fmt.Errorf("failed to deactivate department: %w", err)
	}

	s.LogInfo(ctx, "Department deactivated", slog.String("department_id", departmentID))
	return nil
}
