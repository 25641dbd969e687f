package store

import (
	"context"
	"fmt"

	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/models"
)

type currencyRepository struct {
	*DB
	logger *logger.Logger
}

func NewCurrencyRepository(db *DB, logger *logger.Logger) CurrencyRepository {
	return &currencyRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *currencyRepository) ReplaceAll(ctx context.Context, currencies []models.Currency) error {
	log := logger.FromContext(ctx)
	q := r.querier(ctx)

	for _, c := range currencies {
		_, err := q.ExecContext(ctx, upsertCurrency,
			c.Code,
			c.Name,
			c.NumericCode,
			c.NamePlural,
			c.DecimalDigits,
			c.Rounding,
			c.Symbol,
			c.SymbolNative,
			c.IsActive,
		)
		if err != nil {
			log.Err(err).
				Str("func", "currencyRepository.ReplaceAll").
				Str("code", c.Code).
				Msg("failed to execute upsert for currency")
			return fmt.Errorf("failed to save currency (code=%s): %w", c.Code, err)
		}
	}

	return nil
}

func (r *currencyRepository) GetAll(ctx context.Context) ([]models.Currency, error) {
	log := logger.FromContext(ctx)

	rows, err := r.querier(ctx).QueryContext(ctx, getAllCurrencies)
	if err != nil {
		log.Err(err).
			Str("func", "currencyRepository.GetAll").
			Msg("failed to query currencies")
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	var items []models.Currency
	for rows.Next() {
		var item models.Currency
		scanErr := rows.Scan(
			&item.Code,
			&item.Name,
			&item.NumericCode,
			&item.NamePlural,
			&item.DecimalDigits,
			&item.Rounding,
			&item.Symbol,
			&item.SymbolNative,
			&item.IsActive,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "currencyRepository.GetAll").
				Msg("failed to scan currency row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "currencyRepository.GetAll").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating currency rows: %w", rowsErr)
	}

	return items, nil
}

func (r *currencyRepository) SetActive(ctx context.Context, code string, active bool) error {
	log := logger.FromContext(ctx)

	result, err := r.querier(ctx).ExecContext(ctx, setCurrencyActive, active, code)
	if err != nil {
		log.Err(err).
			Str("func", "currencyRepository.SetActive").
			Str("code", code).
			Msg("failed to execute update for currency flag")
		return fmt.Errorf("failed to update currency (code=%s): %w", code, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (code=%s): %w", code, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: currency %s", ErrRecordNotFound, code)
	}

	return nil
}

func (r *currencyRepository) ExistingCodes(ctx context.Context, codes []string) (map[string]bool, error) {
	return existingIn(ctx, r.querier(ctx), "currencies", "code", codes)
}
