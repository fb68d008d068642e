package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
//
// The only legal transitions are DRAFT -> POSTED (via Post) and
// POSTED -> CANCELLED (via Cancel). A cancelled entry keeps its lines for
// audit but is excluded from every derived sum.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Cancelled EntryStatus = "CANCELLED"
)

// JournalEntry represents a single financial event composed of journal lines.
// EntryNumber is the external-facing identifier, assigned monotonically from
// a sequence at creation; EntryID is the internal primary key.
type JournalEntry struct {
	EntryID      string      `json:"entryID"`     // Primary Key (UUID)
	EntryNumber  string      `json:"entryNumber"` // Unique, monotonic (e.g. "JE-000042")
	EntryDate    time.Time   `json:"entryDate"`   // Date the event occurred
	Description  string      `json:"description"`
	Reference    string      `json:"reference"` // Optional external reference
	Status       EntryStatus `json:"status"`
	PostedAt     *time.Time  `json:"postedAt,omitempty"` // Set exactly once, when posted
	PostedBy     string      `json:"postedBy,omitempty"`
	CancelledAt  *time.Time  `json:"cancelledAt,omitempty"` // Set when cancelled
	CancelledBy  string      `json:"cancelledBy,omitempty"`
	CancelReason string      `json:"cancelReason,omitempty"`
	AuditFields

	// Lines are owned exclusively by the entry and are often loaded separately.
	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine represents a single debit or credit within a journal entry.
// Exactly one of Debit/Credit is non-zero; both are non-negative. The line
// carries its own department so a single entry may span departments.
type JournalLine struct {
	LineID       string          `json:"lineID"`  // Primary Key (UUID)
	EntryID      string          `json:"entryID"` // FK -> JournalEntry
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`    // FK -> Account (non-owning)
	DepartmentID string          `json:"departmentID"` // FK -> Department
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	AuditFields
}

// IsDebit reports whether the line is a debit line.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// IsEditable reports whether the entry's lines may still be mutated.
func (e JournalEntry) IsEditable() bool {
	return e.Status == Draft
}
