package mapping

import (
	"github.com/campusbooks/campus_ledger_app/internal/core/domain"
	"github.com/campusbooks/campus_ledger_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		EntryNumber:  d.EntryNumber,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		Reference:    d.Reference,
		Status:       models.EntryStatus(d.Status),
		PostedAt:     d.PostedAt,
		PostedBy:     d.PostedBy,
		CancelledAt:  d.CancelledAt,
		CancelledBy:  d.CancelledBy,
		CancelReason: d.CancelReason,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		EntryNumber:  m.EntryNumber,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		Reference:    m.Reference,
		Status:       domain.EntryStatus(m.Status),
		PostedAt:     m.PostedAt,
		PostedBy:     m.PostedBy,
		CancelledAt:  m.CancelledAt,
		CancelledBy:  m.CancelledBy,
		CancelReason: m.CancelReason,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		LineNumber:   d.LineNumber,
		AccountID:    d.AccountID,
		DepartmentID: d.DepartmentID,
		Description:  d.Description,
		Debit:        d.Debit,
		Credit:       d.Credit,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		LineNumber:   m.LineNumber,
		AccountID:    m.AccountID,
		DepartmentID: m.DepartmentID,
		Description:  m.Description,
		Debit:        m.Debit,
		Credit:       m.Credit,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
