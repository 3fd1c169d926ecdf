package mapping

import (
	"github.com/kliniku/ledgercore/internal/core/domain"
	"github.com/kliniku/ledgercore/internal/models"
)

// ToModelJournalEntry converts a domain.JournalEntry for DB storage.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalID:   d.JournalID,
		Number:      d.Number,
		EntryDate:   d.EntryDate,
		Memo:        d.Memo,
		Reference:   d.Reference,
		Status:      models.JournalStatus(d.Status),
		PostedAt:    d.PostedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a models.JournalEntry from the DB.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalID:   m.JournalID,
		Number:      m.Number,
		EntryDate:   m.EntryDate,
		Memo:        m.Memo,
		Reference:   m.Reference,
		Status:      domain.JournalStatus(m.Status),
		PostedAt:    m.PostedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain.JournalLine for DB storage.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		JournalID:   d.JournalID,
		AccountID:   d.AccountID,
		Sequence:    d.Sequence,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a models.JournalLine from the DB.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		AccountID:   m.AccountID,
		Sequence:    m.Sequence,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
