package dto

import (
	"time"

	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDraftRequest defines the payload for creating a draft journal entry.
type CreateDraftRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Reference   string    `json:"reference"`
}

// AddLineRequest defines the payload for adding a line to a draft entry.
// Exactly one of debit/credit must be non-zero; the service enforces this.
type AddLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	DepartmentID string          `json:"departmentID" binding:"required"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
}

// CancelEntryRequest defines the payload for cancelling a posted entry.
type CancelEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	DepartmentID string          `json:"departmentID"`
	Description  string          `json:"description"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      string                `json:"entryID"`
	EntryNumber  string                `json:"entryNumber"`
	Date         time.Time             `json:"date"`
	Description  string                `json:"description"`
	Reference    string                `json:"reference,omitempty"`
	Status       string                `json:"status"`
	PostedAt     *time.Time            `json:"postedAt,omitempty"`
	CancelledAt  *time.Time            `json:"cancelledAt,omitempty"`
	CancelReason string                `json:"cancelReason,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
}

// ListEntriesParams holds the filter and pagination parameters for listing entries.
// Filters are ANDed together.
type ListEntriesParams struct {
	Status     *domain.EntryStatus `form:"status" binding:"omitempty,entrystatus"`
	DateFrom   *time.Time          `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time          `form:"dateTo" time_format:"2006-01-02"`
	SearchText string              `form:"search"`
	Limit      int                 `form:"limit"`
	NextToken  *string             `form:"nextToken"`
}

// ListEntriesResponse is the paginated listing of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain JournalLine to its response DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       l.LineID,
		LineNumber:   l.LineNumber,
		AccountID:    l.AccountID,
		DepartmentID: l.DepartmentID,
		Description:  l.Description,
		Debit:        l.Debit,
		Credit:       l.Credit,
	}
}

// ToJournalLineResponses converts a slice of domain JournalLines to response DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToJournalLineResponse(&line)
	}
	return responses
}

// ToJournalEntryResponse converts a domain JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		Date:         e.EntryDate,
		Description:  e.Description,
		Reference:    e.Reference,
		Status:       string(e.Status),
		PostedAt:     e.PostedAt,
		CancelledAt:  e.CancelledAt,
		CancelReason: e.CancelReason,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToJournalLineResponses(e.Lines)
	}
	return resp
}
