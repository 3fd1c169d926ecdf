package services

import (
	"context"

	"github.com/kliniku/ledgercore/internal/core/domain"
	"github.com/kliniku/ledgercore/internal/dto"
)

// JournalSvcFacade exposes the journal posting engine.
type JournalSvcFacade interface {
	// CreateJournal validates and atomically persists a balanced journal
	// entry. Lines whose debit and credit are both effectively zero are
	// dropped before validation; when fewer than two lines survive, no entry
	// is created and (nil, nil) is returned. Callers distinguish that no-op by
	// the nil entry.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PostSaleJournal posts the fixed sale recipe: debit the funding account
	// for the gross amount, credit sales revenue and tax payable, debit the
	// discount contra account when a discount applies.
	PostSaleJournal(ctx context.Context, req dto.SaleJournalRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetJournalByID retrieves an entry with its lines.
	GetJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListJournals retrieves entries, optionally filtered by status and date range.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) ([]domain.JournalEntry, error)
}
