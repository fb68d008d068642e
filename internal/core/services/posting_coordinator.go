package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	portsrepo "github.com/campusbooks/campus_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/campusbooks/campus_ledger_app/internal/core/ports/services"
	"github.com/campusbooks/campus_ledger_app/internal/utils/fiscal"
)

// postingCoordinator applies and reverses the budget effect of a journal
// entry. Only debit lines consume budget: an expense is recorded as a debit
// against an expense account, and the budget tracks spending against
// allocations. Credit lines never touch spent totals.
//
// Both operations execute as a single database transaction through the
// journal repository, so an entry can never be POSTED without its deltas
// applied, nor CANCELLED without them removed.
type postingCoordinator struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewPostingCoordinator creates a new PostingCoordinator.
func NewPostingCoordinator(journalRepo portsrepo.JournalRepositoryFacade) portssvc.PostingCoordinatorSvc {
	return &postingCoordinator{journalRepo: journalRepo}
}

var _ portssvc.PostingCoordinatorSvc = (*postingCoordinator)(nil)

// BudgetDeltas groups the entry's debit lines by (department, account, fiscal
// year) and sums them. The fiscal year is derived from the entry date. The
// result is sorted by department then account so the repository locks
// allocation rows in a stable order, which keeps concurrent postings from
// deadlocking against each other.
func BudgetDeltas(entry *domain.JournalEntry, lines []domain.JournalLine) []domain.BudgetDelta {
	fiscalYear := fiscal.YearOf(entry.EntryDate)

	type key struct {
		departmentID string
		accountID    string
	}
	grouped := make(map[key]domain.BudgetDelta)
	for _, line := range lines {
		if !line.IsDebit() {
			continue
		}
		k := key{departmentID: line.DepartmentID, accountID: line.AccountID}
		delta, ok := grouped[k]
		if !ok {
			delta = domain.BudgetDelta{
				DepartmentID: line.DepartmentID,
				AccountID:    line.AccountID,
				FiscalYear:   fiscalYear,
			}
		}
		delta.Amount = delta.Amount.Add(line.Debit)
		grouped[k] = delta
	}

	deltas := make([]domain.BudgetDelta, 0, len(grouped))
	for _, delta := range grouped {
		deltas = append(deltas, delta)
	}
	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].DepartmentID != deltas[j].DepartmentID {
			return deltas[i].DepartmentID < deltas[j].DepartmentID
		}
		return deltas[i].AccountID < deltas[j].AccountID
	})
	return deltas
}

// ApplyPosting posts the entry and adds its debit sums to matching active
// allocations. Allocations may go past their limit; overspend is surfaced
// through utilization reporting, never blocked here.
func (s *postingCoordinator) ApplyPosting(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, userID string) error {
	deltas := BudgetDeltas(entry, lines)
	postedAt := time.Now().UTC()

	if err := s.journalRepo.MarkEntryPosted(ctx, entry.EntryID, postedAt, userID, deltas); err != nil {
		s.LogError(ctx, err, "Failed to apply posting",
			slog.String("entry_id", entry.EntryID),
			slog.String("entry_number", entry.EntryNumber))
		return fmt.Errorf("failed to post entry %s: %w", entry.EntryNumber, err)
	}

	s.LogInfo(ctx, "Posting applied",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("delta_count", len(deltas)))
	return nil
}

// ReversePosting cancels the entry and subtracts exactly what ApplyPosting
// added. The repository recorded which allocations the posting credited, so
// the reversal replays those records instead of re-matching allocations by
// key; allocations created or reactivated since the posting stay untouched.
func (s *postingCoordinator) ReversePosting(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, reason string, userID string) error {
	cancelledAt := time.Now().UTC()

	if err := s.journalRepo.MarkEntryCancelled(ctx, entry.EntryID, reason, cancelledAt, userID); err != nil {
		s.LogError(ctx, err, "Failed to reverse posting",
			slog.String("entry_id", entry.EntryID),
			slog.String("entry_number", entry.EntryNumber))
		return fmt.Errorf("failed to cancel entry %s: %w", entry.EntryNumber, err)
	}

	s.LogInfo(ctx, "Posting reversed",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("line_count", len(lines)))
	return nil
}
