package services

import (
	"context"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/campusbooks/campus_ledger_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entry data
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines populated.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// IsBalanced reports whether the entry's debits equal its credits.
	// Zero-line entries are balanced but not postable.
	IsBalanced(ctx context.Context, entryID string) (bool, error)
}

// JournalWriterSvc defines the journal entry lifecycle operations.
type JournalWriterSvc interface {
	// CreateDraft creates an entry with zero lines in DRAFT status.
	CreateDraft(ctx context.Context, req dto.CreateDraftRequest, creatorUserID string) (*domain.JournalEntry, error)

	// AddLine appends a line to a draft entry.
	AddLine(ctx context.Context, entryID string, req dto.AddLineRequest, userID string) (*domain.JournalLine, error)

	// RemoveLine removes a line from a draft entry.
	RemoveLine(ctx context.Context, entryID string, lineID string, userID string) error

	// PostEntry transitions a balanced draft to POSTED and applies its budget
	// effect atomically via the posting coordinator.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// CancelEntry transitions a posted entry to CANCELLED and reverses its
	// budget effect atomically via the posting coordinator.
	CancelEntry(ctx context.Context, entryID string, reason string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// PostingCoordinatorSvc is the single place where a posted entry's budget
// effect is applied and reversed, keeping entry status and allocation spent
// totals consistent with each other.
type PostingCoordinatorSvc interface {
	// ApplyPosting posts the entry and adds its debit sums to matching
	// allocations. Invoked exactly once per entry; a second call fails with
	// ErrAlreadyApplied.
	ApplyPosting(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, userID string) error

	// ReversePosting cancels the entry and subtracts the exact same deltas
	// ApplyPosting added, returning every affected spent total to its
	// pre-posting value.
	ReversePosting(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, reason string, userID string) error
}
