package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Cancelled EntryStatus = "CANCELLED"
)

// JournalEntry is the database row shape for the journal_entries table.
type JournalEntry struct {
	EntryID      string      `json:"entryID"`
	EntryNumber  string      `json:"entryNumber"`
	EntryDate    time.Time   `json:"entryDate"`
	Description  string      `json:"description"`
	Reference    string      `json:"reference"`
	Status       EntryStatus `json:"status"`
	PostedAt     *time.Time  `json:"postedAt,omitempty"`
	PostedBy     string      `json:"postedBy,omitempty"`
	CancelledAt  *time.Time  `json:"cancelledAt,omitempty"`
	CancelledBy  string      `json:"cancelledBy,omitempty"`
	CancelReason string      `json:"cancelReason,omitempty"`
	AuditFields
}

// JournalLine is the database row shape for the journal_lines table.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	DepartmentID string          `json:"departmentID"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	AuditFields
}
