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

type participantRepository struct {
	*DB
	logger *logger.Logger
}

func NewParticipantRepository(db *DB, logger *logger.Logger) ParticipantRepository {
	return &participantRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *participantRepository) GetPending(ctx context.Context) ([]models.Participant, error) {
	log := logger.FromContext(ctx)

	rows, err := r.querier(ctx).QueryContext(ctx, getPendingParticipants)
	if err != nil {
		log.Err(err).
			Str("func", "participantRepository.GetPending").
			Msg("failed to query pending participants")
		return nil, fmt.Errorf("failed to query pending participants: %w", err)
	}
	defer rows.Close()

	var items []models.Participant
	for rows.Next() {
		item, scanErr := scanParticipant(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "participantRepository.GetPending").
				Msg("failed to scan participant row")
			return nil, scanErr
		}
		items = append(items, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "participantRepository.GetPending").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating participant rows: %w", rowsErr)
	}

	return items, nil
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (models.Participant, error) {
	log := logger.FromContext(ctx)

	row := r.querier(ctx).QueryRowContext(ctx, getParticipantByID, id)
	item, err := scanParticipant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Participant{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "participantRepository.GetByID").
			Str("id", id).
			Msg("failed to scan participant row")
		return models.Participant{}, err
	}

	return item, nil
}

func (r *participantRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Participant, error) {
	log := logger.FromContext(ctx)

	found := make(map[string]models.Participant, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	query, args, err := sq.Select("id", "name", "email", "phone", "updated_at", "is_deleted", "needs_sync").
		From("participants").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "participantRepository.GetByIDs").
			Msg("failed to query participants by id set")
		return nil, fmt.Errorf("failed to query participants by id set: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, scanErr := scanParticipant(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "participantRepository.GetByIDs").
				Msg("failed to scan participant row")
			return nil, scanErr
		}
		found[item.ID] = item
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "participantRepository.GetByIDs").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating participant rows: %w", rowsErr)
	}

	return found, nil
}

func (r *participantRepository) Upsert(ctx context.Context, p models.Participant) error {
	log := logger.FromContext(ctx)

	_, err := r.querier(ctx).ExecContext(ctx, upsertParticipant,
		p.ID,
		p.Name,
		nullableStr(p.Email),
		nullableStr(p.Phone),
		encodeTime(p.UpdatedAt),
		p.IsDeleted,
		p.NeedsSync,
	)
	if err != nil {
		log.Err(err).
			Str("func", "participantRepository.Upsert").
			Str("id", p.ID).
			Msg("failed to execute upsert for participant")
		return fmt.Errorf("failed to save participant (id=%s): %w", p.ID, err)
	}

	return nil
}

func (r *participantRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	q := r.querier(ctx)

	// detach references first: expenses survive the payer's removal
	steps := []string{
		deleteParticipantMemberships,
		nullParticipantPayerRefs,
		nullParticipantShareRefs,
		deleteParticipant,
	}
	for _, query := range steps {
		if _, err := q.ExecContext(ctx, query, id); err != nil {
			log.Err(err).
				Str("func", "participantRepository.Delete").
				Str("id", id).
				Msg("failed to execute delete step for participant")
			return fmt.Errorf("failed to delete participant (id=%s): %w", id, err)
		}
	}

	return nil
}

func (r *participantRepository) ClearNeedsSync(ctx context.Context, ids []string) error {
	return clearNeedsSyncIn(ctx, r.querier(ctx), "participants", ids)
}

func (r *participantRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	return existingIn(ctx, r.querier(ctx), "participants", "id", ids)
}

func (r *participantRepository) RewriteID(ctx context.Context, oldID, newID string) error {
	log := logger.FromContext(ctx)
	q := r.querier(ctx)

	// foreign keys are checked at commit so the parent id and its references
	// can move together
	if _, err := q.ExecContext(ctx, "PRAGMA defer_foreign_keys = ON;"); err != nil {
		return fmt.Errorf("failed to defer foreign keys: %w", err)
	}

	steps := []string{
		rewriteParticipantID,
		rewriteMembershipRefs,
		rewritePayerRefs,
		rewriteShareRefs,
	}
	for _, query := range steps {
		if _, err := q.ExecContext(ctx, query, newID, oldID); err != nil {
			log.Err(err).
				Str("func", "participantRepository.RewriteID").
				Str("old_id", oldID).
				Str("new_id", newID).
				Msg("failed to execute id rewrite step")
			return fmt.Errorf("failed to rewrite participant id %s -> %s: %w", oldID, newID, err)
		}
	}

	log.Debug().
		Str("func", "participantRepository.RewriteID").
		Str("old_id", oldID).
		Str("new_id", newID).
		Msg("participant id rewritten in place")
	return nil
}

func (r *participantRepository) MergeInto(ctx context.Context, dupID, canonicalID string) error {
	log := logger.FromContext(ctx)
	q := r.querier(ctx)

	// memberships can collide when both participants belong to the same
	// group, so they are copied with IGNORE and the originals dropped
	if _, err := q.ExecContext(ctx, copyMembershipsToMerged, canonicalID, dupID); err != nil {
		log.Err(err).
			Str("func", "participantRepository.MergeInto").
			Str("dup_id", dupID).
			Str("canonical_id", canonicalID).
			Msg("failed to copy memberships to canonical participant")
		return fmt.Errorf("failed to merge participant %s into %s: %w", dupID, canonicalID, err)
	}
	if _, err := q.ExecContext(ctx, deleteParticipantMemberships, dupID); err != nil {
		return fmt.Errorf("failed to merge participant %s into %s: %w", dupID, canonicalID, err)
	}

	repoints := []string{rewritePayerRefs, rewriteShareRefs}
	for _, query := range repoints {
		if _, err := q.ExecContext(ctx, query, canonicalID, dupID); err != nil {
			log.Err(err).
				Str("func", "participantRepository.MergeInto").
				Str("dup_id", dupID).
				Str("canonical_id", canonicalID).
				Msg("failed to repoint expense references")
			return fmt.Errorf("failed to merge participant %s into %s: %w", dupID, canonicalID, err)
		}
	}

	if _, err := q.ExecContext(ctx, deleteParticipant, dupID); err != nil {
		log.Err(err).
			Str("func", "participantRepository.MergeInto").
			Str("dup_id", dupID).
			Msg("failed to remove merged duplicate participant")
		return fmt.Errorf("failed to merge participant %s into %s: %w", dupID, canonicalID, err)
	}

	log.Debug().
		Str("func", "participantRepository.MergeInto").
		Str("dup_id", dupID).
		Str("canonical_id", canonicalID).
		Msg("participant folded into canonical record")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (models.Participant, error) {
	var (
		item       models.Participant
		email      sql.NullString
		phone      sql.NullString
		updatedRaw string
	)

	if err := row.Scan(&item.ID, &item.Name, &email, &phone, &updatedRaw, &item.IsDeleted, &item.NeedsSync); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Participant{}, err
		}
		return models.Participant{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	updatedAt, err := decodeTime(updatedRaw)
	if err != nil {
		return models.Participant{}, err
	}

	item.Email = strPtr(email)
	item.Phone = strPtr(phone)
	item.UpdatedAt = updatedAt
	return item, nil
}
