package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expenseai/go-expense-sync/internal/calculator"
	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/internal/store"
	"github.com/expenseai/go-expense-sync/models"
)

type clientLedgerService struct {
	storages *store.ClientStorages
	logger   *logger.Logger

	now func() time.Time
}

func NewClientLedgerService(storages *store.ClientStorages, log *logger.Logger) ClientLedgerService {
	return &clientLedgerService{
		storages: storages,
		logger:   log,
		now:      time.Now,
	}
}

// CreateParticipant implements [ClientLedgerService].
func (s *clientLedgerService) CreateParticipant(ctx context.Context, name string, email, phone *string) (models.Participant, error) {
	if name == "" {
		return models.Participant{}, errors.New("participant name is required")
	}

	p := models.Participant{
		ID:        models.NewID(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		UpdatedAt: s.now(),
		NeedsSync: true,
	}
	if err := s.storages.ParticipantRepository.Upsert(ctx, p); err != nil {
		return models.Participant{}, fmt.Errorf("create participant: %w", err)
	}

	return p, nil
}

// CreateGroup implements [ClientLedgerService].
func (s *clientLedgerService) CreateGroup(ctx context.Context, name, defaultCurrencyCode string, memberIDs []string) (models.Group, error) {
	if name == "" {
		return models.Group{}, errors.New("group name is required")
	}
	if defaultCurrencyCode == "" {
		return models.Group{}, errors.New("group default currency is required")
	}

	g := models.Group{
		ID:                  models.NewID(),
		Name:                name,
		DefaultCurrencyCode: &defaultCurrencyCode,
		MemberIDs:           memberIDs,
		UpdatedAt:           s.now(),
		NeedsSync:           true,
	}
	if err := s.storages.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.storages.GroupRepository.Upsert(ctx, g)
	}); err != nil {
		return models.Group{}, fmt.Errorf("create group: %w", err)
	}

	return g, nil
}

// CreateExpense implements [ClientLedgerService]. The caller supplies the
// business fields; id, timestamps and the dirty flag are filled in here.
func (s *clientLedgerService) CreateExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	if e.Amount <= 0 {
		return models.Expense{}, errors.New("expense amount must be positive")
	}

	now := s.now()
	e.ID = models.NewID()
	e.CreatedAt = now
	e.UpdatedAt = now
	e.IsDeleted = false
	e.NeedsSync = true
	for i := range e.Shares {
		if e.Shares[i].ID == "" {
			e.Shares[i].ID = models.NewID()
		}
	}

	if err := s.storages.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.storages.ExpenseRepository.Upsert(ctx, e)
	}); err != nil {
		return models.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	return e, nil
}

// DeleteExpense implements [ClientLedgerService]. The row turns into a dirty
// tombstone; the next acknowledged push removes it physically.
func (s *clientLedgerService) DeleteExpense(ctx context.Context, id string) error {
	e, err := s.storages.ExpenseRepository.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}

	e.IsDeleted = true
	e.NeedsSync = true
	e.UpdatedAt = s.now()

	if err = s.storages.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.storages.ExpenseRepository.Upsert(ctx, e)
	}); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}

	return nil
}

// GroupBalances implements [ClientLedgerService].
func (s *clientLedgerService) GroupBalances(ctx context.Context, groupID string) ([]calculator.Balance, error) {
	expenses, err := s.storages.ExpenseRepository.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("load group expenses: %w", err)
	}

	return calculator.ComputeBalances(expenses), nil
}

// SettlementPlan implements [ClientLedgerService].
func (s *clientLedgerService) SettlementPlan(ctx context.Context, groupID string) ([]calculator.Transfer, error) {
	balances, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return calculator.SettlementPlan(balances), nil
}

// RecordSettlement implements [ClientLedgerService]. The transfer is stored
// as a settlement expense paid by the debtor with a single share owed by the
// creditor.
func (s *clientLedgerService) RecordSettlement(ctx context.Context, groupID string, transfer calculator.Transfer, currencyCode string) (models.Expense, error) {
	if transfer.FromID == "" || transfer.ToID == "" {
		return models.Expense{}, errors.New("settlement requires both participants")
	}

	from := transfer.FromID
	to := transfer.ToID
	e := models.Expense{
		Description:  "Settlement",
		Amount:       transfer.Amount,
		IsSettlement: true,
		GroupID:      &groupID,
		CurrencyCode: &currencyCode,
		PaidByID:     &from,
		Shares: []models.ExpenseShare{
			{ID: models.NewID(), ParticipantID: &to, Amount: transfer.Amount},
		},
	}

	created, err := s.CreateExpense(ctx, e)
	if err != nil {
		return models.Expense{}, fmt.Errorf("record settlement: %w", err)
	}

	s.logger.Info().
		Str("group_id", groupID).
		Str("from", transfer.FromID).
		Str("to", transfer.ToID).
		Float64("amount", transfer.Amount).
		Msg("settlement recorded")
	return created, nil
}
