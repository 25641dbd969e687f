package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/expenseai/go-expense-sync/models"
)

// Timestamps are stored as TEXT in the wire format so the column lexically
// sorts in time order and round-trips without precision surprises.

func encodeTime(t time.Time) string {
	return models.FormatWireTime(t)
}

func decodeTime(raw string) (time.Time, error) {
	t, err := models.ParseWireTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad stored timestamp %q: %w", ErrScanningRow, raw, err)
	}
	return t, nil
}

func nullableStr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// existingIn runs a SELECT keyCol FROM table WHERE keyCol IN (keys) query and
// returns the set of keys actually present. Used to drop dangling references
// from pulled records before they hit a foreign key.
func existingIn(ctx context.Context, q Querier, table, keyCol string, keys []string) (map[string]bool, error) {
	found := make(map[string]bool, len(keys))
	if len(keys) == 0 {
		return found, nil
	}

	query, args, err := sq.Select(keyCol).
		From(table).
		Where(sq.Eq{keyCol: keys}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		found[key] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// clearNeedsSyncIn drops the dirty flag on the given ids of table.
func clearNeedsSyncIn(ctx context.Context, q Querier, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sq.Update(table).
		Set("needs_sync", 0).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
