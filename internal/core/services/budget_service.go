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
	"github.com/campusbooks/campus_ledger_app/internal/utils/budgeting"
	"github.com/campusbooks/campus_ledger_app/internal/utils/fiscal"
)

// budgetService provides administrative operations on budget allocations and
// their derived utilization view. The spent column is never written here;
// only the posting coordinator adjusts it, inside the posting transaction.
type budgetService struct {
	BaseService
	budgetRepo    portsrepo.BudgetRepositoryFacade
	accountSvc    portssvc.AccountReaderSvc
	departmentSvc portssvc.DepartmentReaderSvc
	thresholds    budgeting.Thresholds
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	accountSvc portssvc.AccountReaderSvc,
	departmentSvc portssvc.DepartmentReaderSvc,
	thresholds budgeting.Thresholds,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:    budgetRepo,
		accountSvc:    accountSvc,
		departmentSvc: departmentSvc,
		thresholds:    thresholds,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// GetAllocation retrieves an allocation by its identifier.
func (s *budgetService) GetAllocation(ctx context.Context, allocationID string) (*domain.BudgetAllocation, error) {
	allocation, err := s.budgetRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find allocation", slog.String("allocation_id", allocationID))
		}
		return nil, err
	}
	return allocation, nil
}

// GetUtilization computes the derived utilization view of an allocation.
func (s *budgetService) GetUtilization(ctx context.Context, allocationID string) (*domain.AllocationUtilization, error) {
	allocation, err := s.GetAllocation(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	utilization := budgeting.Utilize(*allocation, s.thresholds)
	return &utilization, nil
}

// ListAllocations retrieves the utilization of every allocation in a fiscal
// year, including inactive ones so administrators can see retired ceilings.
func (s *budgetService) ListAllocations(ctx context.Context, fiscalYear int) ([]domain.AllocationUtilization, error) {
	if err := fiscal.ValidateYear(fiscalYear); err != nil {
		return nil, err
	}

	allocations, err := s.budgetRepo.ListAllocationsByYear(ctx, fiscalYear, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list allocations", slog.Int("fiscal_year", fiscalYear))
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	utilizations := make([]domain.AllocationUtilization, 0, len(allocations))
	for _, allocation := range allocations {
		utilizations = append(utilizations, budgeting.Utilize(allocation, s.thresholds))
	}
	return utilizations, nil
}

// UpsertAllocation creates or updates the allocated ceiling for a
// (department, account, fiscal year) key. Lowering the ceiling below current
// spend is allowed; the allocation simply reports EXCEEDED afterwards.
func (s *budgetService) UpsertAllocation(ctx context.Context, req dto.UpsertAllocationRequest, userID string) (*domain.BudgetAllocation, error) {
	if err := fiscal.ValidateYear(req.FiscalYear); err != nil {
		return nil, err
	}
	if req.Allocated.IsNegative() {
		return nil, fmt.Errorf("%w: allocated amount cannot be negative", apperrors.ErrInvalidAmount)
	}

	department, err := s.departmentSvc.GetDepartmentByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: department %s", apperrors.ErrNotFound, req.DepartmentID)
		}
		return nil, fmt.Errorf("failed to fetch department: %w", err)
	}
	if !department.IsActive {
		return nil, fmt.Errorf("%w: department %s is inactive", apperrors.ErrValidation, department.Code)
	}

	account, err := s.accountSvc.GetAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, req.AccountID)
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountCode)
	}

	now := time.Now().UTC()
	allocation := domain.BudgetAllocation{
		AllocationID: uuid.NewString(),
		DepartmentID: req.DepartmentID,
		AccountID:    req.AccountID,
		FiscalYear:   req.FiscalYear,
		Allocated:    req.Allocated,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	stored, err := s.budgetRepo.UpsertAllocation(ctx, allocation)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert allocation",
			slog.String("department_id", req.DepartmentID),
			slog.String("account_id", req.AccountID),
			slog.Int("fiscal_year", req.FiscalYear))
		return nil, fmt.Errorf("failed to upsert allocation: %w", err)
	}

	s.LogInfo(ctx, "Allocation upserted",
		slog.String("allocation_id", stored.AllocationID),
		slog.String("department_id", stored.DepartmentID),
		slog.String("account_id", stored.AccountID),
		slog.Int("fiscal_year", stored.FiscalYear),
		slog.String("allocated", stored.Allocated.String()))
	return stored, nil
}

// DeactivateAllocation marks an allocation inactive. Postings after
// deactivation no longer match it; its spent history stays intact.
func (s *budgetService) DeactivateAllocation(ctx context.Context, allocationID string, userID string) error {
	allocation, err := s.budgetRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return err
	}
	if !allocation.IsActive {
		return nil
	}

	if err := s.budgetRepo.SetAllocationActive(ctx, allocationID, false, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate allocation", slog.String("allocation_id", allocationID))
		return fmt.Errorf("failed to deactivate allocation: %w", err)
	}

	s.LogInfo(ctx, "Allocation deactivated", slog.String("allocation_id", allocationID))
	return nil
}
