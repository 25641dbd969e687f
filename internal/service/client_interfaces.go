package service

import (
	"context"
	"time"

	"github.com/expenseai/go-expense-sync/internal/calculator"
	"github.com/expenseai/go-expense-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/service_mock.go -package=mock

// ClientSyncService defines the client-side contract for synchronising the
// local expense ledger with the remote server.
type ClientSyncService interface {
	// Sync performs one complete bidirectional synchronisation cycle: it
	// refreshes the currency reference table, then pushes dirty records and
	// pulls remote changes for participants, groups and expenses in that
	// order, and finally advances the sync checkpoint.
	//
	// Only one cycle runs at a time; a concurrent call returns
	// [ErrSyncInProgress]. Without a usable token it returns
	// [ErrNotAuthenticated]. Any other error aborts the cycle and leaves the
	// checkpoint untouched, so the next cycle re-covers the same window.
	Sync(ctx context.Context) error

	// IsSyncing reports whether a sync cycle is currently running.
	IsSyncing() bool
}

// ClientSyncJob defines the contract for a background worker that
// periodically runs a sync cycle.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// ClientLedgerService defines the local contract for recording shared
// expenses and settling group debts. Every write marks the affected record
// dirty so the next sync cycle uploads it.
type ClientLedgerService interface {
	// CreateParticipant records a new person with a fresh id.
	CreateParticipant(ctx context.Context, name string, email, phone *string) (models.Participant, error)

	// CreateGroup records a new group with the given members.
	CreateGroup(ctx context.Context, name, defaultCurrencyCode string, memberIDs []string) (models.Group, error)

	// CreateExpense records a new expense with its shares.
	CreateExpense(ctx context.Context, e models.Expense) (models.Expense, error)

	// DeleteExpense tombstones an expense; the record disappears physically
	// once the server acknowledges the deletion.
	DeleteExpense(ctx context.Context, id string) error

	// GroupBalances computes each member's net position in a group.
	GroupBalances(ctx context.Context, groupID string) ([]calculator.Balance, error)

	// SettlementPlan computes a minimal set of transfers clearing a group's
	// debts.
	SettlementPlan(ctx context.Context, groupID string) ([]calculator.Transfer, error)

	// RecordSettlement stores one executed transfer as a settlement expense.
	RecordSettlement(ctx context.Context, groupID string, transfer calculator.Transfer, currencyCode string) (models.Expense, error)
}
