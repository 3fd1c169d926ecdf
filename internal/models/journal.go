package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus mirrors domain.JournalStatus at the storage layer.
type JournalStatus string

// JournalEntry represents a journals row.
type JournalEntry struct {
	JournalID string        `db:"journal_id"`
	Number    string        `db:"number"`
	EntryDate time.Time     `db:"entry_date"`
	Memo      string        `db:"memo"`
	Reference string        `db:"reference"`
	Status    JournalStatus `db:"status"`
	PostedAt  time.Time     `db:"posted_at"`
	AuditFields
}

// JournalLine represents a journal_lines row.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	JournalID   string          `db:"journal_id"`
	AccountID   string          `db:"account_id"`
	Sequence    int             `db:"sequence"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	AuditFields
}
