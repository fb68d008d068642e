package services

import (
	"context"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/campusbooks/campus_ledger_app/internal/dto"
)

// ReportingService is the read-only aggregator over the journal and budget
// stores. Every result is recomputed from current store state on each call;
// nothing is cached. Empty results are empty collections, never errors.
type ReportingService interface {
	// Summarize aggregates all active allocations of a fiscal year: totals,
	// per-department breakdown, exceeded count and the critical list.
	// Fails only with ErrInvalidFiscalYear for malformed year input.
	Summarize(ctx context.Context, fiscalYear int) (*domain.BudgetSummary, error)

	// ListEntries retrieves a filtered, paginated listing of journal entries
	// ordered by entry date descending, then entry number descending.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
