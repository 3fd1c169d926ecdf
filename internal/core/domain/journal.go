package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
// Only Posted is ever produced today; Draft and Void exist in the schema
// for a possible entry workflow.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Void   JournalStatus = "VOID"
)

// JournalEntry represents a single, balanced financial event. Entries are
// immutable once posted; there is no update or void path.
type JournalEntry struct {
	JournalID string        `json:"journalID"`
	Number    string        `json:"number"` // JRN-YYYYMMDD-NNNNNN, assigned at persist time
	EntryDate time.Time     `json:"entryDate"`
	Memo      string        `json:"memo"`
	Reference string        `json:"reference,omitempty"`
	Status    JournalStatus `json:"status"`
	PostedAt  time.Time     `json:"postedAt"`
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine is one debit or credit leg of a journal entry. Exactly one of
// Debit/Credit is non-zero; Sequence is the entry-local ordering.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	JournalID   string          `json:"journalID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	Sequence    int             `json:"sequence"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	AuditFields
}

// GeneralLedgerLine is a journal line annotated with the running balance of
// its account, computed as the cumulative sum of (debit - credit) over the
// account's full history ordered by (entryDate, sequence, lineID).
type GeneralLedgerLine struct {
	JournalLine
	EntryDate      time.Time       `json:"entryDate"`
	JournalNumber  string          `json:"journalNumber"`
	Memo           string          `json:"memo"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}
