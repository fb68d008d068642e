package repositories

import (
	"context"
	"time"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
)

// EntryListFilter narrows a journal entry listing. All set fields are ANDed.
type EntryListFilter struct {
	Status     *domain.EntryStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	SearchText string // case-insensitive substring on entry number or description
}

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific entry by its internal identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a filtered, paginated listing ordered by entry
	// date descending, then entry number descending. Returns the entries and
	// a token for the next page.
	ListEntries(ctx context.Context, filter EntryListFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data.
//
// MarkEntryPosted and MarkEntryCancelled are the persistence half of the
// posting coordinator: each performs the status transition AND the budget
// spent adjustments in one database transaction, guarded on the entry's
// current status so the effect can never be applied twice.
type JournalEntryWriter interface {
	// CreateEntry persists a new draft entry, assigning the next entry number
	// from the sequence. Returns the assigned entry number.
	CreateEntry(ctx context.Context, entry domain.JournalEntry) (string, error)

	// InsertLine appends a line to a draft entry. Fails with ErrInvalidState
	// if the entry is no longer a draft.
	InsertLine(ctx context.Context, line domain.JournalLine) error

	// DeleteLine removes a line from a draft entry.
	DeleteLine(ctx context.Context, entryID string, lineID string) error

	// MarkEntryPosted transitions DRAFT -> POSTED and adds each delta to the
	// matching active allocation's spent total, atomically, recording which
	// allocations were credited. Deltas with no matching allocation are
	// skipped. Fails with ErrAlreadyApplied if the entry is already posted,
	// ErrInvalidState for any other non-draft status; storage failures wrap
	// ErrPersistence and leave state untouched.
	MarkEntryPosted(ctx context.Context, entryID string, postedAt time.Time, postedBy string, deltas []domain.BudgetDelta) error

	// MarkEntryCancelled transitions POSTED -> CANCELLED and subtracts exactly
	// the amounts MarkEntryPosted recorded, from exactly the allocations it
	// credited, atomically. Allocations created or reactivated after the
	// posting are unaffected. Fails with ErrAlreadyApplied if the entry is
	// already cancelled, ErrInvalidState for any other non-posted status;
	// storage failures wrap ErrPersistence and leave state untouched.
	MarkEntryCancelled(ctx context.Context, entryID string, reason string, cancelledAt time.Time, cancelledBy string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
