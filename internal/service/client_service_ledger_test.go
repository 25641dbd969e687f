package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenseai/go-expense-sync/internal/calculator"
	"github.com/expenseai/go-expense-sync/internal/config"
	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/internal/store"
	"github.com/expenseai/go-expense-sync/models"
)

type ledgerFixture struct {
	storages *store.ClientStorages
	svc      ClientLedgerService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	storages, err := store.NewClientStorages(config.ClientStorage{
		DB: config.ClientDB{DSN: ":memory:"},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.DB.Close() })

	require.NoError(t, storages.CurrencyRepository.ReplaceAll(context.Background(), []models.Currency{
		{Code: "EUR", Name: "Euro", DecimalDigits: 2},
	}))

	return &ledgerFixture{
		storages: storages,
		svc:      NewClientLedgerService(storages, logger.Nop()),
	}
}

func (f *ledgerFixture) seedGroup(t *testing.T, memberNames ...string) (groupID string, memberIDs []string) {
	t.Helper()
	ctx := context.Background()

	for _, name := range memberNames {
		p, err := f.svc.CreateParticipant(ctx, name, nil, nil)
		require.NoError(t, err)
		memberIDs = append(memberIDs, p.ID)
	}

	g, err := f.svc.CreateGroup(ctx, "Trip", "EUR", memberIDs)
	require.NoError(t, err)
	return g.ID, memberIDs
}

func TestLedger_CreateParticipantMarksDirty(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	p, err := f.svc.CreateParticipant(ctx, "Ann", nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.NeedsSync)

	pending, err := f.storages.ParticipantRepository.GetPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, p.ID, pending[0].ID)
}

func TestLedger_CreateParticipantRequiresName(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.svc.CreateParticipant(context.Background(), "", nil, nil)

	assert.Error(t, err)
}

func TestLedger_CreateExpenseAssignsIDsAndDirtyFlag(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	groupID, members := f.seedGroup(t, "Ann", "Bob")

	e, err := f.svc.CreateExpense(ctx, models.Expense{
		Description:  "Dinner",
		Amount:       40,
		GroupID:      &groupID,
		CurrencyCode: strp("EUR"),
		PaidByID:     &members[0],
		Shares: []models.ExpenseShare{
			{ParticipantID: &members[0], Amount: 20},
			{ParticipantID: &members[1], Amount: 20},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.True(t, e.NeedsSync)
	for _, share := range e.Shares {
		assert.NotEmpty(t, share.ID)
	}

	stored, err := f.storages.ExpenseRepository.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, stored.NeedsSync)
	assert.Len(t, stored.Shares, 2)
}

func TestLedger_CreateExpenseRejectsNonPositiveAmount(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.svc.CreateExpense(context.Background(), models.Expense{Amount: 0})

	assert.Error(t, err)
}

func TestLedger_DeleteExpenseTombstones(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	groupID, members := f.seedGroup(t, "Ann")

	e, err := f.svc.CreateExpense(ctx, models.Expense{
		Description: "Taxi", Amount: 10,
		GroupID: &groupID, CurrencyCode: strp("EUR"), PaidByID: &members[0],
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteExpense(ctx, e.ID))

	stored, err := f.storages.ExpenseRepository.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted)
	assert.True(t, stored.NeedsSync)
}

func TestLedger_BalancesAndSettlementRoundTrip(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	groupID, members := f.seedGroup(t, "Ann", "Bob")
	ann, bob := members[0], members[1]

	_, err := f.svc.CreateExpense(ctx, models.Expense{
		Description: "Dinner", Amount: 40,
		GroupID: &groupID, CurrencyCode: strp("EUR"), PaidByID: &ann,
		Shares: []models.ExpenseShare{
			{ParticipantID: &ann, Amount: 20},
			{ParticipantID: &bob, Amount: 20},
		},
	})
	require.NoError(t, err)

	plan, err := f.svc.SettlementPlan(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, calculator.Transfer{FromID: bob, ToID: ann, Amount: 20}, plan[0])

	settlement, err := f.svc.RecordSettlement(ctx, groupID, plan[0], "EUR")
	require.NoError(t, err)
	assert.True(t, settlement.IsSettlement)
	assert.True(t, settlement.NeedsSync)

	balances, err := f.svc.GroupBalances(ctx, groupID)
	require.NoError(t, err)
	for _, b := range balances {
		assert.InDelta(t, 0, b.Net, 0.01)
	}

	plan, err = f.svc.SettlementPlan(ctx, groupID)
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestLedger_DeletedExpenseExcludedFromBalances(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	groupID, members := f.seedGroup(t, "Ann", "Bob")
	ann, bob := members[0], members[1]

	e, err := f.svc.CreateExpense(ctx, models.Expense{
		Description: "Oops", Amount: 100,
		GroupID: &groupID, CurrencyCode: strp("EUR"), PaidByID: &ann,
		Shares: []models.ExpenseShare{{ParticipantID: &bob, Amount: 100}},
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteExpense(ctx, e.ID))

	plan, err := f.svc.SettlementPlan(ctx, groupID)
	require.NoError(t, err)
	assert.Empty(t, plan)

	// stays visible to sync as a dirty tombstone until acknowledged
	pending, err := f.storages.ExpenseRepository.GetPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].IsDeleted)
}
