package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenseai/go-expense-sync/internal/logger"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{DB: conn, logger: logger.Nop()}, mock
}

func TestParticipantRepository_GetPending_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewParticipantRepository(db, logger.Nop())

	mock.ExpectQuery("FROM participants").WillReturnError(assert.AnError)

	_, err := repo.GetPending(context.Background())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_GetPending_MalformedTimestamp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewParticipantRepository(db, logger.Nop())

	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "updated_at", "is_deleted", "needs_sync"}).
		AddRow("p-1", "Ann", nil, nil, "not-a-timestamp", false, true)
	mock.ExpectQuery("FROM participants").WillReturnRows(rows)

	_, err := repo.GetPending(context.Background())

	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckpointRepository_GetCheckpoint_MalformedValue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCheckpointRepository(db, logger.Nop())

	rows := sqlmock.NewRows([]string{"value"}).AddRow("garbage")
	mock.ExpectQuery("FROM sync_state").WillReturnRows(rows)

	_, err := repo.GetCheckpoint(context.Background())

	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_WithTx_BeginError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin().WillReturnError(assert.AnError)

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		t.Fatal("callback must not run when begin fails")
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginningTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}
