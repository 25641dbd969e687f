package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/models"
)

type expenseRepository struct {
	*DB
	logger *logger.Logger
}

func NewExpenseRepository(db *DB, logger *logger.Logger) ExpenseRepository {
	return &expenseRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *expenseRepository) GetPending(ctx context.Context) ([]models.Expense, error) {
	return r.queryExpenses(ctx, "expenseRepository.GetPending", getPendingExpenses)
}

func (r *expenseRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	return r.queryExpenses(ctx, "expenseRepository.ListByGroup", listExpensesByGroup, groupID)
}

func (r *expenseRepository) queryExpenses(ctx context.Context, caller, query string, args ...any) ([]models.Expense, error) {
	log := logger.FromContext(ctx)

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to query expenses")
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var items []models.Expense
	for rows.Next() {
		item, scanErr := scanExpense(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan expense row")
			return nil, scanErr
		}
		items = append(items, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating expense rows: %w", rowsErr)
	}

	if err = r.loadShares(ctx, items); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (models.Expense, error) {
	log := logger.FromContext(ctx)

	row := r.querier(ctx).QueryRowContext(ctx, getExpenseByID, id)
	item, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Expense{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "expenseRepository.GetByID").
			Str("id", id).
			Msg("failed to scan expense row")
		return models.Expense{}, err
	}

	items := []models.Expense{item}
	if err = r.loadShares(ctx, items); err != nil {
		return models.Expense{}, err
	}

	return items[0], nil
}

func (r *expenseRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Expense, error) {
	log := logger.FromContext(ctx)

	found := make(map[string]models.Expense, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	query, args, err := sq.Select("id", "description", "amount", "is_settlement", "group_id", "currency_code",
		"paid_by_id", "created_at", "updated_at", "is_deleted", "needs_sync").
		From("expenses").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "expenseRepository.GetByIDs").
			Msg("failed to query expenses by id set")
		return nil, fmt.Errorf("failed to query expenses by id set: %w", err)
	}
	defer rows.Close()

	var items []models.Expense
	for rows.Next() {
		item, scanErr := scanExpense(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "expenseRepository.GetByIDs").
				Msg("failed to scan expense row")
			return nil, scanErr
		}
		items = append(items, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "expenseRepository.GetByIDs").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating expense rows: %w", rowsErr)
	}

	if err = r.loadShares(ctx, items); err != nil {
		return nil, err
	}

	for _, e := range items {
		found[e.ID] = e
	}
	return found, nil
}

func (r *expenseRepository) Upsert(ctx context.Context, e models.Expense) error {
	log := logger.FromContext(ctx)
	q := r.querier(ctx)

	_, err := q.ExecContext(ctx, upsertExpense,
		e.ID,
		e.Description,
		e.Amount,
		e.IsSettlement,
		nullableStr(e.GroupID),
		nullableStr(e.CurrencyCode),
		nullableStr(e.PaidByID),
		encodeTime(e.CreatedAt),
		encodeTime(e.UpdatedAt),
		e.IsDeleted,
		e.NeedsSync,
	)
	if err != nil {
		log.Err(err).
			Str("func", "expenseRepository.Upsert").
			Str("id", e.ID).
			Msg("failed to execute upsert for expense")
		return fmt.Errorf("failed to save expense (id=%s): %w", e.ID, err)
	}

	// shares have no lifecycle of their own: replace the whole set
	if _, err = q.ExecContext(ctx, deleteExpenseShares, e.ID); err != nil {
		log.Err(err).
			Str("func", "expenseRepository.Upsert").
			Str("id", e.ID).
			Msg("failed to clear expense share set")
		return fmt.Errorf("failed to save expense shares (id=%s): %w", e.ID, err)
	}
	for _, share := range e.Shares {
		if _, err = q.ExecContext(ctx, insertExpenseShare, share.ID, e.ID, nullableStr(share.ParticipantID), share.Amount); err != nil {
			log.Err(err).
				Str("func", "expenseRepository.Upsert").
				Str("id", e.ID).
				Str("share_id", share.ID).
				Msg("failed to insert expense share")
			return fmt.Errorf("failed to save expense shares (id=%s): %w", e.ID, err)
		}
	}

	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	q := r.querier(ctx)

	if _, err := q.ExecContext(ctx, deleteExpenseShares, id); err != nil {
		log.Err(err).
			Str("func", "expenseRepository.Delete").
			Str("id", id).
			Msg("failed to delete expense shares")
		return fmt.Errorf("failed to delete expense (id=%s): %w", id, err)
	}

	if _, err := q.ExecContext(ctx, deleteExpense, id); err != nil {
		log.Err(err).
			Str("func", "expenseRepository.Delete").
			Str("id", id).
			Msg("failed to execute delete for expense")
		return fmt.Errorf("failed to delete expense (id=%s): %w", id, err)
	}

	return nil
}

func (r *expenseRepository) ClearNeedsSync(ctx context.Context, ids []string) error {
	return clearNeedsSyncIn(ctx, r.querier(ctx), "expenses", ids)
}

// loadShares fills Shares for every expense in items with one batched query.
func (r *expenseRepository) loadShares(ctx context.Context, items []models.Expense) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(items))
	index := make(map[string]int, len(items))
	for i := range items {
		items[i].Shares = nil
		ids = append(ids, items[i].ID)
		index[items[i].ID] = i
	}

	query, args, err := sq.Select("id", "expense_id", "participant_id", "amount").
		From("expense_shares").
		Where(sq.Eq{"expense_id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query expense shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			share       models.ExpenseShare
			expenseID   string
			participant sql.NullString
		)
		if err = rows.Scan(&share.ID, &expenseID, &participant, &share.Amount); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		share.ParticipantID = strPtr(participant)
		if i, ok := index[expenseID]; ok {
			items[i].Shares = append(items[i].Shares, share)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating expense share rows: %w", err)
	}

	return nil
}

func scanExpense(row rowScanner) (models.Expense, error) {
	var (
		item       models.Expense
		groupID    sql.NullString
		currency   sql.NullString
		paidByID   sql.NullString
		createdRaw string
		updatedRaw string
	)

	err := row.Scan(
		&item.ID,
		&item.Description,
		&item.Amount,
		&item.IsSettlement,
		&groupID,
		&currency,
		&paidByID,
		&createdRaw,
		&updatedRaw,
		&item.IsDeleted,
		&item.NeedsSync,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Expense{}, err
		}
		return models.Expense{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	createdAt, err := decodeTime(createdRaw)
	if err != nil {
		return models.Expense{}, err
	}
	updatedAt, err := decodeTime(updatedRaw)
	if err != nil {
		return models.Expense{}, err
	}

	item.GroupID = strPtr(groupID)
	item.CurrencyCode = strPtr(currency)
	item.PaidByID = strPtr(paidByID)
	item.CreatedAt = createdAt
	item.UpdatedAt = updatedAt
	return item, nil
}
