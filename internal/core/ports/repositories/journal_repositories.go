package repositories

import (
	"context"

	"github.com/kliniku/ledgercore/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal entry by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// FindLinesByJournalID retrieves the lines of a journal entry ordered by sequence.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournals retrieves journal entries, optionally filtered by status and
	// entry-date range, newest first.
	ListJournals(ctx context.Context, status *domain.JournalStatus, dateRange *domain.DateRange, limit int, offset int) ([]domain.JournalEntry, error)

	// FindAccountHistory retrieves every line touching the account over all
	// history, ordered by (entry_date, sequence, line_id). RunningBalance on
	// the returned rows is left zero; the caller computes the prefix sum.
	FindAccountHistory(ctx context.Context, accountID string) ([]domain.GeneralLedgerLine, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists an entry and its lines atomically. The journal
	// number is assigned inside the transaction from the per-day sequence and
	// returned. Entries are immutable once saved.
	SaveJournal(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
