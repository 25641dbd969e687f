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

type groupRepository struct {
	*DB
	logger *logger.Logger
}

func NewGroupRepository(db *DB, logger *logger.Logger) GroupRepository {
	return &groupRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *groupRepository) GetPending(ctx context.Context) ([]models.Group, error) {
	log := logger.FromContext(ctx)

	rows, err := r.querier(ctx).QueryContext(ctx, getPendingGroups)
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.GetPending").
			Msg("failed to query pending groups")
		return nil, fmt.Errorf("failed to query pending groups: %w", err)
	}
	defer rows.Close()

	items, err := scanGroups(rows)
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.GetPending").
			Msg("failed to scan group rows")
		return nil, err
	}

	if err = r.loadMembers(ctx, items); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (models.Group, error) {
	log := logger.FromContext(ctx)

	row := r.querier(ctx).QueryRowContext(ctx, getGroupByID, id)
	item, err := scanGroup(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Group{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "groupRepository.GetByID").
			Str("id", id).
			Msg("failed to scan group row")
		return models.Group{}, err
	}

	items := []models.Group{item}
	if err = r.loadMembers(ctx, items); err != nil {
		return models.Group{}, err
	}

	return items[0], nil
}

func (r *groupRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Group, error) {
	log := logger.FromContext(ctx)

	found := make(map[string]models.Group, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	query, args, err := sq.Select("id", "name", "default_currency_code", "updated_at", "is_deleted", "needs_sync").
		From("groups").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.GetByIDs").
			Msg("failed to query groups by id set")
		return nil, fmt.Errorf("failed to query groups by id set: %w", err)
	}
	defer rows.Close()

	items, err := scanGroups(rows)
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.GetByIDs").
			Msg("failed to scan group rows")
		return nil, err
	}

	if err = r.loadMembers(ctx, items); err != nil {
		return nil, err
	}

	for _, g := range items {
		found[g.ID] = g
	}
	return found, nil
}

func (r *groupRepository) Upsert(ctx context.Context, g models.Group) error {
	log := logger.FromContext(ctx)
	q := r.querier(ctx)

	_, err := q.ExecContext(ctx, upsertGroup,
		g.ID,
		g.Name,
		nullableStr(g.DefaultCurrencyCode),
		encodeTime(g.UpdatedAt),
		g.IsDeleted,
		g.NeedsSync,
	)
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.Upsert").
			Str("id", g.ID).
			Msg("failed to execute upsert for group")
		return fmt.Errorf("failed to save group (id=%s): %w", g.ID, err)
	}

	// the member set is owned by the group row: replace it wholesale
	if _, err = q.ExecContext(ctx, deleteGroupMemberships, g.ID); err != nil {
		log.Err(err).
			Str("func", "groupRepository.Upsert").
			Str("id", g.ID).
			Msg("failed to clear group member set")
		return fmt.Errorf("failed to save group members (id=%s): %w", g.ID, err)
	}
	for _, memberID := range g.MemberIDs {
		if _, err = q.ExecContext(ctx, insertGroupMember, g.ID, memberID); err != nil {
			log.Err(err).
				Str("func", "groupRepository.Upsert").
				Str("id", g.ID).
				Str("member_id", memberID).
				Msg("failed to insert group member")
			return fmt.Errorf("failed to save group members (id=%s): %w", g.ID, err)
		}
	}

	return nil
}

func (r *groupRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	q := r.querier(ctx)

	if _, err := q.ExecContext(ctx, nullGroupExpenseRefs, id); err != nil {
		log.Err(err).
			Str("func", "groupRepository.Delete").
			Str("id", id).
			Msg("failed to detach expenses from group")
		return fmt.Errorf("failed to delete group (id=%s): %w", id, err)
	}

	if _, err := q.ExecContext(ctx, deleteGroup, id); err != nil {
		log.Err(err).
			Str("func", "groupRepository.Delete").
			Str("id", id).
			Msg("failed to execute delete for group")
		return fmt.Errorf("failed to delete group (id=%s): %w", id, err)
	}

	return nil
}

func (r *groupRepository) ClearNeedsSync(ctx context.Context, ids []string) error {
	return clearNeedsSyncIn(ctx, r.querier(ctx), "groups", ids)
}

func (r *groupRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	return existingIn(ctx, r.querier(ctx), "groups", "id", ids)
}

// loadMembers fills MemberIDs for every group in items with one batched query.
func (r *groupRepository) loadMembers(ctx context.Context, items []models.Group) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(items))
	index := make(map[string]int, len(items))
	for i := range items {
		items[i].MemberIDs = nil
		ids = append(ids, items[i].ID)
		index[items[i].ID] = i
	}

	query, args, err := sq.Select("group_id", "participant_id").
		From("group_members").
		Where(sq.Eq{"group_id": ids}).
		OrderBy("participant_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID, participantID string
		if err = rows.Scan(&groupID, &participantID); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if i, ok := index[groupID]; ok {
			items[i].MemberIDs = append(items[i].MemberIDs, participantID)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating group member rows: %w", err)
	}

	return nil
}

func scanGroup(row rowScanner) (models.Group, error) {
	var (
		item       models.Group
		currency   sql.NullString
		updatedRaw string
	)

	if err := row.Scan(&item.ID, &item.Name, &currency, &updatedRaw, &item.IsDeleted, &item.NeedsSync); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Group{}, err
		}
		return models.Group{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	updatedAt, err := decodeTime(updatedRaw)
	if err != nil {
		return models.Group{}, err
	}

	item.DefaultCurrencyCode = strPtr(currency)
	item.UpdatedAt = updatedAt
	return item, nil
}

func scanGroups(rows *sql.Rows) ([]models.Group, error) {
	var items []models.Group
	for rows.Next() {
		item, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}
	return items, nil
}
