package store

import (
	"context"
	"fmt"

	"github.com/expenseai/go-expense-sync/internal/config"
	"github.com/expenseai/go-expense-sync/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// DB is the shared SQLite handle; it owns transaction scoping via WithTx.
	DB *DB

	// CurrencyRepository holds the pull-only currency reference table.
	CurrencyRepository CurrencyRepository

	// ParticipantRepository stores people taking part in shared expenses.
	ParticipantRepository ParticipantRepository

	// GroupRepository stores groups and their member sets.
	GroupRepository GroupRepository

	// ExpenseRepository stores expenses with their shares.
	ExpenseRepository ExpenseRepository

	// CheckpointRepository persists the sync cursor.
	CheckpointRepository CheckpointRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories sharing the connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		DB:                    db,
		CurrencyRepository:    NewCurrencyRepository(db, logger),
		ParticipantRepository: NewParticipantRepository(db, logger),
		GroupRepository:       NewGroupRepository(db, logger),
		ExpenseRepository:     NewExpenseRepository(db, logger),
		CheckpointRepository:  NewCheckpointRepository(db, logger),
	}, nil
}
