package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kliniku/ledgercore/internal/apperrors"
	"github.com/kliniku/ledgercore/internal/core/domain"
	portsrepo "github.com/kliniku/ledgercore/internal/core/ports/repositories"
	"github.com/kliniku/ledgercore/internal/models"
	"github.com/kliniku/ledgercore/internal/utils/mapping"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget plan snapshots.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// FindPlan retrieves a plan and its items by (year, scenario).
func (r *PgxBudgetRepository) FindPlan(ctx context.Context, year int, scenario string) (*domain.BudgetPlan, error) {
	query := `
		SELECT plan_id, year, scenario, created_at, created_by, last_updated_at, last_updated_by
		FROM budget_plans
		WHERE year = $1 AND scenario = $2;
	`
	var m models.BudgetPlan
	err := r.Pool.QueryRow(ctx, query, year, scenario).Scan(
		&m.PlanID,
		&m.Year,
		&m.Scenario,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget plan %d/%s: %w", year, scenario, err)
	}

	plan := mapping.ToDomainBudgetPlan(m)

	itemQuery := `
		SELECT item_id, plan_id, account_code, amount, notes
		FROM budget_items
		WHERE plan_id = $1
		ORDER BY account_code;
	`
	rows, err := r.Pool.Query(ctx, itemQuery, plan.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for budget plan %s: %w", plan.PlanID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var mi models.BudgetItem
		if err := rows.Scan(&mi.ItemID, &mi.PlanID, &mi.AccountCode, &mi.Amount, &mi.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan budget item row: %w", err)
		}
		plan.Items = append(plan.Items, mapping.ToDomainBudgetItem(mi))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget item rows: %w", err)
	}

	return &plan, nil
}

// ListPlans retrieves plan headers for a year, without items.
func (r *PgxBudgetRepository) ListPlans(ctx context.Context, year int) ([]domain.BudgetPlan, error) {
	query := `
		SELECT plan_id, year, scenario, created_at, created_by, last_updated_at, last_updated_by
		FROM budget_plans
		WHERE year = $1
		ORDER BY scenario;
	`
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget plans for year %d: %w", year, err)
	}
	defer rows.Close()

	plans := []domain.BudgetPlan{}
	for rows.Next() {
		var m models.BudgetPlan
		err := rows.Scan(
			&m.PlanID,
			&m.Year,
			&m.Scenario,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget plan row: %w", err)
		}
		plans = append(plans, mapping.ToDomainBudgetPlan(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget plan rows: %w", err)
	}

	return plans, nil
}

// SavePlan upserts the plan header and replaces all of its items in one
// transaction. Items are deleted and re-inserted wholesale; no diffing.
func (r *PgxBudgetRepository) SavePlan(ctx context.Context, plan domain.BudgetPlan, items []domain.BudgetItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // rollback after commit is a no-op

	m := mapping.ToModelBudgetPlan(plan)
	upsert := `
		INSERT INTO budget_plans (plan_id, year, scenario, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (year, scenario) DO UPDATE
		SET last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, upsert,
		m.PlanID,
		m.Year,
		m.Scenario,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget plan %d/%s: %w", m.Year, m.Scenario, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM budget_items WHERE plan_id = $1;`, m.PlanID); err != nil {
		return fmt.Errorf("failed to clear items for budget plan %s: %w", m.PlanID, err)
	}

	insertItem := `
		INSERT INTO budget_items (item_id, plan_id, account_code, amount, notes)
		VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		mi := mapping.ToModelBudgetItem(item)
		batch.Queue(insertItem, mi.ItemID, mi.PlanID, mi.AccountCode, mi.Amount, mi.Notes)
	}

	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		var batchErr error
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil && batchErr == nil {
				batchErr = fmt.Errorf("failed to insert budget item %d of plan %s: %w", i, m.PlanID, err)
			}
		}
		if err := br.Close(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to close budget item batch for plan %s: %w", m.PlanID, err)
		}
		if batchErr != nil {
			return batchErr
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	return nil
}
