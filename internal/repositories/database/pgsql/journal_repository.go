package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	"github.com/kliniku/ledgercore/internal/models"
	"github.com/kliniku/ledgercore/internal/utils/mapping"
)

const journalColumns = `journal_id, number, entry_date, memo, reference, status, posted_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// formatJournalNumber renders a claimed per-day sequence value as
// JRN-YYYYMMDD-NNNNNN. Zero-padding keeps numbers within a day sortable as
// plain strings.
func formatJournalNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("JRN-%s-%06d", day.Format("20060102"), seq)
}

// nextJournalNumber claims the next per-day sequence value inside tx and
// formats it as JRN-YYYYMMDD-NNNNNN. The upsert serializes concurrent callers
// on the day row, so numbers for a given day are gapless under commit.
func nextJournalNumber(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) (string, error) {
	day := entry.EntryDate.UTC()
	query := `
		INSERT INTO journal_day_sequences (day, last_value)
		VALUES ($1::date, 1)
		ON CONFLICT (day) DO UPDATE SET last_value = journal_day_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, day.Format("2006-01-02")).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to claim journal sequence for %s: %w", day.Format("2006-01-02"), err)
	}
	return formatJournalNumber(day, seq), nil
}

// insertJournalInTx writes a journal entry and its lines inside an existing
// transaction, assigning the number from the per-day sequence. Shared by the
// journal, loan, and savings repositories so every mirrored journal goes
// through the same numbering path.
func insertJournalInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	number, err := nextJournalNumber(ctx, tx, entry)
	if err != nil {
		return "", err
	}
	entry.Number = number

	m := mapping.ToModelJournalEntry(entry)
	insertEntry := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, insertEntry,
		m.JournalID,
		m.Number,
		m.EntryDate,
		m.Memo,
		m.Reference,
		m.Status,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert journal %s: %w", m.JournalID, err)
	}

	insertLine := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, sequence, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(insertLine,
			ml.LineID,
			ml.JournalID,
			ml.AccountID,
			ml.Sequence,
			ml.Debit,
			ml.Credit,
			ml.Description,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert journal line %d of %s: %w", i, m.JournalID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close journal line batch for %s: %w", m.JournalID, err)
	}
	if batchErr != nil {
		return "", batchErr
	}

	return number, nil
}

// SaveJournal persists an entry and its lines atomically and returns the
// assigned journal number.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // rollback after commit is a no-op

	number, err := insertJournalInTx(ctx, tx, entry, lines)
	if err != nil {
		return "", err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return number, nil
}

func scanJournal(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalID,
		&m.Number,
		&m.EntryDate,
		&m.Memo,
		&m.Reference,
		&m.Status,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindJournalByID retrieves a journal entry by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByJournalID retrieves the lines of a journal ordered by sequence.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, sequence, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY sequence;
	`

	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.JournalID,
			&m.AccountID,
			&m.Sequence,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}

	return lines, nil
}

// ListJournals retrieves journal entries newest first, optionally filtered by
// status and entry-date range.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, status *domain.JournalStatus, dateRange *domain.DateRange, limit int, offset int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + journalColumns + ` FROM journals WHERE 1=1`
	args := []any{}
	argPos := 1

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*status))
		argPos++
	}
	if dateRange != nil {
		if dateRange.From != nil {
			query += fmt.Sprintf(" AND entry_date >= $%d", argPos)
			args = append(args, *dateRange.From)
			argPos++
		}
		if dateRange.To != nil {
			query += fmt.Sprintf(" AND entry_date <= $%d", argPos)
			args = append(args, *dateRange.To)
			argPos++
		}
	}

	query += fmt.Sprintf(" ORDER BY entry_date DESC, number DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}

	return entries, nil
}

// FindAccountHistory retrieves every posted line touching the account over all
// history, ordered by (entry_date, sequence, line_id). RunningBalance is left
// zero; the ledger service computes the prefix sum.
func (r *PgxJournalRepository) FindAccountHistory(ctx context.Context, accountID string) ([]domain.GeneralLedgerLine, error) {
	query := `
		SELECT l.line_id, l.journal_id, l.account_id, l.sequence, l.debit, l.credit, l.description,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       j.entry_date, j.number, j.memo
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE l.account_id = $1 AND j.status = 'POSTED'
		ORDER BY j.entry_date, l.sequence, l.line_id;
	`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account history for %s: %w", accountID, err)
	}
	defer rows.Close()

	history := []domain.GeneralLedgerLine{}
	for rows.Next() {
		var m models.JournalLine
		var gl domain.GeneralLedgerLine
		err := rows.Scan(
			&m.LineID,
			&m.JournalID,
			&m.AccountID,
			&m.Sequence,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&gl.EntryDate,
			&gl.JournalNumber,
			&gl.Memo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account history row: %w", err)
		}
		gl.JournalLine = mapping.ToDomainJournalLine(m)
		history = append(history, gl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account history rows: %w", err)
	}

	return history, nil
}
