package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/expenseai/go-expense-sync/internal/logger"
)

// syncCheckpointKey is the sync_state row holding the pull cursor.
const syncCheckpointKey = "last_sync_checkpoint"

type checkpointRepository struct {
	*DB
	logger *logger.Logger
}

func NewCheckpointRepository(db *DB, logger *logger.Logger) CheckpointRepository {
	return &checkpointRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *checkpointRepository) GetCheckpoint(ctx context.Context) (time.Time, error) {
	log := logger.FromContext(ctx)

	var raw string
	err := r.querier(ctx).QueryRowContext(ctx, getSyncStateValue, syncCheckpointKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNoCheckpoint
		}
		log.Err(err).
			Str("func", "checkpointRepository.GetCheckpoint").
			Msg("failed to read sync checkpoint")
		return time.Time{}, fmt.Errorf("failed to read sync checkpoint: %w", err)
	}

	checkpoint, err := decodeTime(raw)
	if err != nil {
		log.Err(err).
			Str("func", "checkpointRepository.GetCheckpoint").
			Str("value", raw).
			Msg("stored sync checkpoint is malformed")
		return time.Time{}, err
	}

	return checkpoint, nil
}

func (r *checkpointRepository) SetCheckpoint(ctx context.Context, t time.Time) error {
	log := logger.FromContext(ctx)

	_, err := r.querier(ctx).ExecContext(ctx, setSyncStateValue, syncCheckpointKey, encodeTime(t))
	if err != nil {
		log.Err(err).
			Str("func", "checkpointRepository.SetCheckpoint").
			Msg("failed to store sync checkpoint")
		return fmt.Errorf("failed to store sync checkpoint: %w", err)
	}

	return nil
}
