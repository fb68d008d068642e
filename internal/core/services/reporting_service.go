package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusbooks/campus_ledger_app/internal/core/ports/services"
	"github.com/campusbooks/campus_ledger_app/internal/dto"
	"github.com/campusbooks/campus_ledger_app/internal/utils/budgeting"
	"github.com/campusbooks/campus_ledger_app/internal/utils/fiscal"
)

const defaultListLimit = 20
const maxListLimit = 100

// reportingService is the read-only aggregator over the journal and budget
// stores. Summaries are recomputed from stored state on every call.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	journalRepo   portsrepo.JournalEntryReader
	thresholds    budgeting.Thresholds
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	journalRepo portsrepo.JournalEntryReader,
	thresholds budgeting.Thresholds,
) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		journalRepo:   journalRepo,
		thresholds:    thresholds,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// Summarize aggregates all active allocations of a fiscal year into totals, a
// per-department breakdown sorted by department name, the exceeded count and
// the critical list. A year with no allocations yields a summary of zero
// totals and empty collections, not an error.
func (s *reportingService) Summarize(ctx context.Context, fiscalYear int) (*domain.BudgetSummary, error) {
	if err := fiscal.ValidateYear(fiscalYear); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetAllocationRows(ctx, fiscalYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch allocation rows", slog.Int("fiscal_year", fiscalYear))
		return nil, fmt.Errorf("failed to fetch allocation rows: %w", err)
	}

	summary := domain.BudgetSummary{
		FiscalYear:  fiscalYear,
		Departments: []domain.DepartmentBudget{},
		Critical:    []domain.AllocationUtilization{},
	}

	byDepartment := make(map[string]*domain.DepartmentBudget)
	for i := range rows {
		row := &rows[i]
		// Derived fields are recomputed here rather than trusted from the
		// repository, so one classification path serves all consumers.
		row.Remaining = row.Allocated.Sub(row.Spent)
		row.Percentage = budgeting.Percentage(row.Allocated, row.Spent)
		row.Status = budgeting.Classify(row.Allocated, row.Spent, s.thresholds)

		summary.TotalAllocated = summary.TotalAllocated.Add(row.Allocated)
		summary.TotalSpent = summary.TotalSpent.Add(row.Spent)

		dept, ok := byDepartment[row.DepartmentID]
		if !ok {
			dept = &domain.DepartmentBudget{
				DepartmentID:   row.DepartmentID,
				DepartmentName: row.DepartmentName,
			}
			byDepartment[row.DepartmentID] = dept
		}
		dept.Allocated = dept.Allocated.Add(row.Allocated)
		dept.Spent = dept.Spent.Add(row.Spent)

		switch row.Status {
		case domain.UtilizationExceeded:
			summary.ExceededCount++
			summary.Critical = append(summary.Critical, *row)
		case domain.UtilizationHigh:
			summary.Critical = append(summary.Critical, *row)
		}
	}

	summary.TotalRemaining = summary.TotalAllocated.Sub(summary.TotalSpent)

	for _, dept := range byDepartment {
		dept.Remaining = dept.Allocated.Sub(dept.Spent)
		summary.Departments = append(summary.Departments, *dept)
	}
	sort.Slice(summary.Departments, func(i, j int) bool {
		return summary.Departments[i].DepartmentName < summary.Departments[j].DepartmentName
	})

	sortCritical(summary.Critical)

	return &summary, nil
}

// sortCritical orders the critical list by utilization percentage descending.
// Allocations with no percentage (zero allocated, positive spend) are the
// worst offenders and sort first; ties break by department name then account
// code so the listing is stable.
func sortCritical(critical []domain.AllocationUtilization) {
	sort.Slice(critical, func(i, j int) bool {
		a, b := critical[i], critical[j]
		if (a.Percentage == nil) != (b.Percentage == nil) {
			return a.Percentage == nil
		}
		if a.Percentage != nil && !a.Percentage.Equal(*b.Percentage) {
			return a.Percentage.GreaterThan(*b.Percentage)
		}
		if a.DepartmentName != b.DepartmentName {
			return a.DepartmentName < b.DepartmentName
		}
		return a.AccountCode < b.AccountCode
	})
}

// ListEntries retrieves a filtered, paginated listing of journal entries
// ordered by entry date descending, then entry number descending.
func (s *reportingService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := portsrepo.EntryListFilter{
		Status:     params.Status,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		SearchText: params.SearchText,
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, dto.ToJournalEntryResponse(&entries[i]))
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}
