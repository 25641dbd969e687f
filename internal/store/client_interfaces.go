package store

import (
	"context"
	"time"

	"github.com/expenseai/go-expense-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/store_mock.go -package=mock

// CurrencyRepository manages the pull-only currency reference table. The
// locally owned is_active flag survives every refresh.
type CurrencyRepository interface {
	// ReplaceAll upserts the given currencies, keeping the local is_active
	// flag of rows that already exist.
	ReplaceAll(ctx context.Context, currencies []models.Currency) error

	// GetAll returns every stored currency ordered by code.
	GetAll(ctx context.Context) ([]models.Currency, error)

	// SetActive toggles the local picker flag for a currency.
	SetActive(ctx context.Context, code string, active bool) error

	// ExistingCodes filters codes down to those present in the table.
	ExistingCodes(ctx context.Context, codes []string) (map[string]bool, error)
}

// ParticipantRepository stores people taking part in shared expenses.
type ParticipantRepository interface {
	// GetPending returns participants flagged needs_sync, tombstoned ones
	// included.
	GetPending(ctx context.Context) ([]models.Participant, error)

	// GetByID returns one participant or [ErrRecordNotFound].
	GetByID(ctx context.Context, id string) (models.Participant, error)

	// GetByIDs returns the participants found among ids in one query, keyed
	// by id. Missing ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Participant, error)

	// Upsert inserts or fully replaces a participant row.
	Upsert(ctx context.Context, p models.Participant) error

	// Delete physically removes a participant together with its group
	// memberships; expense references to it are set to NULL.
	Delete(ctx context.Context, id string) error

	// ClearNeedsSync drops the dirty flag on the given ids.
	ClearNeedsSync(ctx context.Context, ids []string) error

	// ExistingIDs filters ids down to those present in the table.
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)

	// RewriteID changes a participant's primary key in place, repointing
	// group memberships, expense payers and expense shares. The new id must
	// not exist yet.
	RewriteID(ctx context.Context, oldID, newID string) error

	// MergeInto repoints every reference from dupID to canonicalID and
	// removes the duplicate row. Used when a server merge maps a local
	// participant onto one that already exists locally.
	MergeInto(ctx context.Context, dupID, canonicalID string) error
}

// GroupRepository stores groups and their member sets.
type GroupRepository interface {
	// GetPending returns groups flagged needs_sync with members loaded,
	// tombstoned ones included.
	GetPending(ctx context.Context) ([]models.Group, error)

	// GetByID returns one group with members loaded or [ErrRecordNotFound].
	GetByID(ctx context.Context, id string) (models.Group, error)

	// GetByIDs returns the groups found among ids in one query, members
	// loaded, keyed by id. Missing ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Group, error)

	// Upsert inserts or fully replaces a group row and its member set.
	// Member ids not present in the participants table are skipped.
	Upsert(ctx context.Context, g models.Group) error

	// Delete physically removes a group and its memberships. Expenses that
	// referenced the group keep existing with a NULL group.
	Delete(ctx context.Context, id string) error

	// ClearNeedsSync drops the dirty flag on the given ids.
	ClearNeedsSync(ctx context.Context, ids []string) error

	// ExistingIDs filters ids down to those present in the table.
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)
}

// ExpenseRepository stores expenses and their shares. Shares have no
// lifecycle of their own: every write replaces the whole share set.
type ExpenseRepository interface {
	// GetPending returns expenses flagged needs_sync with shares loaded,
	// tombstoned ones included.
	GetPending(ctx context.Context) ([]models.Expense, error)

	// GetByID returns one expense with shares loaded or [ErrRecordNotFound].
	GetByID(ctx context.Context, id string) (models.Expense, error)

	// GetByIDs returns the expenses found among ids in one query, shares
	// loaded, keyed by id. Missing ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Expense, error)

	// ListByGroup returns all live expenses of a group with shares loaded.
	ListByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// Upsert inserts or fully replaces an expense row and its share set.
	Upsert(ctx context.Context, e models.Expense) error

	// Delete physically removes an expense; its shares cascade.
	Delete(ctx context.Context, id string) error

	// ClearNeedsSync drops the dirty flag on the given ids.
	ClearNeedsSync(ctx context.Context, ids []string) error
}

// CheckpointRepository persists the sync cursor in the sync_state table.
type CheckpointRepository interface {
	// GetCheckpoint returns the stored cursor, or [ErrNoCheckpoint] when the
	// device has never completed a full sync.
	GetCheckpoint(ctx context.Context) (time.Time, error)

	// SetCheckpoint stores the cursor. Written only after a fully successful
	// sync cycle.
	SetCheckpoint(ctx context.Context, t time.Time) error
}
