package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/expenseai/go-expense-sync/internal/adapter"
	"github.com/expenseai/go-expense-sync/internal/auth"
	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/internal/store"
	"github.com/expenseai/go-expense-sync/models"
)

type clientSyncService struct {
	storages *store.ClientStorages
	adapter  adapter.ServerAdapter
	tokens   auth.TokenProvider
	logger   *logger.Logger

	// now supplies the wall clock used for the checkpoint; replaced in tests
	now func() time.Time

	syncing atomic.Bool
}

func NewClientSyncService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, tokens auth.TokenProvider, log *logger.Logger) ClientSyncService {
	return &clientSyncService{
		storages: storages,
		adapter:  serverAdapter,
		tokens:   tokens,
		logger:   log,
		now:      time.Now,
	}
}

// Sync implements [ClientSyncService]. Entities move in dependency order so a
// pulled record never lands before the records it references: currencies
// first, then participants, groups, expenses. The checkpoint is taken from
// the wall clock at cycle start and stored only when the whole cycle
// succeeded; a failed cycle leaves the previous cursor in place and the next
// run re-covers the same window. Reconciliation is idempotent, so replayed
// records are harmless.
func (s *clientSyncService) Sync(ctx context.Context) error {
	if !s.syncing.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.syncing.Store(false)

	log := s.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	token, err := s.tokens.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	s.adapter.SetToken(token)

	start := s.now()

	since, err := s.loadCheckpoint(ctx)
	if err != nil {
		return fmt.Errorf("load sync checkpoint: %w", err)
	}

	if err = s.refreshCurrencies(ctx); err != nil {
		return fmt.Errorf("sync currencies: %w", err)
	}
	if err = syncEntity(ctx, s.storages.DB, s.participantSync(), since); err != nil {
		return fmt.Errorf("sync participants: %w", err)
	}
	if err = syncEntity(ctx, s.storages.DB, s.groupSync(), since); err != nil {
		return fmt.Errorf("sync groups: %w", err)
	}
	if err = syncEntity(ctx, s.storages.DB, s.expenseSync(), since); err != nil {
		return fmt.Errorf("sync expenses: %w", err)
	}

	if err = s.storages.CheckpointRepository.SetCheckpoint(ctx, start); err != nil {
		return fmt.Errorf("store sync checkpoint: %w", err)
	}

	log.Info().Time("checkpoint", start).Msg("sync cycle completed")
	return nil
}

// IsSyncing implements [ClientSyncService].
func (s *clientSyncService) IsSyncing() bool {
	return s.syncing.Load()
}

func (s *clientSyncService) loadCheckpoint(ctx context.Context) (*time.Time, error) {
	checkpoint, err := s.storages.CheckpointRepository.GetCheckpoint(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoCheckpoint) {
			return nil, nil
		}
		return nil, err
	}
	return &checkpoint, nil
}

// refreshCurrencies replaces the reference table with the server's current
// full set. Currencies never carry local edits, so there is nothing to push.
func (s *clientSyncService) refreshCurrencies(ctx context.Context) error {
	dtos, err := s.adapter.FetchCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("fetch currencies: %w", err)
	}
	if len(dtos) == 0 {
		return nil
	}

	currencies := make([]models.Currency, 0, len(dtos))
	for _, dto := range dtos {
		currencies = append(currencies, models.CurrencyFromDTO(dto))
	}

	return s.storages.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.storages.CurrencyRepository.ReplaceAll(ctx, currencies)
	})
}

// entitySync bundles the per-entity steps of one push-then-pull pass over a
// single DTO type.
type entitySync[D any] struct {
	collect func(ctx context.Context) ([]D, error)
	push    func(ctx context.Context, items []D) ([]D, error)
	ack     func(ctx context.Context, accepted []D) error
	fetch   func(ctx context.Context, since *time.Time) ([]D, error)
	apply   func(ctx context.Context, remote []D) error
}

// syncEntity runs one push-then-pull pass: dirty records go out first, the
// echoed acknowledgment is reconciled in one transaction, then remote changes
// since the checkpoint are applied in another. An empty dirty set skips the
// push entirely.
func syncEntity[D any](ctx context.Context, db *store.DB, e entitySync[D], since *time.Time) error {
	dtos, err := e.collect(ctx)
	if err != nil {
		return err
	}

	if len(dtos) > 0 {
		accepted, err := e.push(ctx, dtos)
		if err != nil {
			return fmt.Errorf("push: %w", err)
		}

		if err = db.WithTx(ctx, func(ctx context.Context) error {
			return e.ack(ctx, accepted)
		}); err != nil {
			return err
		}
	}

	remote, err := e.fetch(ctx, since)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if len(remote) == 0 {
		return nil
	}

	return db.WithTx(ctx, func(ctx context.Context) error {
		return e.apply(ctx, remote)
	})
}

func (s *clientSyncService) participantSync() entitySync[models.ParticipantDTO] {
	return entitySync[models.ParticipantDTO]{
		collect: func(ctx context.Context) ([]models.ParticipantDTO, error) {
			pending, err := s.storages.ParticipantRepository.GetPending(ctx)
			if err != nil {
				return nil, fmt.Errorf("collect pending: %w", err)
			}
			dtos := make([]models.ParticipantDTO, 0, len(pending))
			for _, p := range pending {
				dtos = append(dtos, p.ToDTO())
			}
			return dtos, nil
		},
		push:  s.adapter.PushParticipants,
		ack:   s.acknowledgeParticipants,
		fetch: s.adapter.FetchParticipants,
		apply: s.applyParticipants,
	}
}

func (s *clientSyncService) groupSync() entitySync[models.GroupDTO] {
	return entitySync[models.GroupDTO]{
		collect: func(ctx context.Context) ([]models.GroupDTO, error) {
			pending, err := s.storages.GroupRepository.GetPending(ctx)
			if err != nil {
				return nil, fmt.Errorf("collect pending: %w", err)
			}
			return collectGroupDTOs(ctx, pending), nil
		},
		push:  s.adapter.PushGroups,
		ack:   s.acknowledgeGroups,
		fetch: s.adapter.FetchGroups,
		apply: s.applyGroups,
	}
}

func (s *clientSyncService) expenseSync() entitySync[models.ExpenseDTO] {
	return entitySync[models.ExpenseDTO]{
		collect: func(ctx context.Context) ([]models.ExpenseDTO, error) {
			pending, err := s.storages.ExpenseRepository.GetPending(ctx)
			if err != nil {
				return nil, fmt.Errorf("collect pending: %w", err)
			}
			return collectExpenseDTOs(ctx, pending), nil
		},
		push:  s.adapter.PushExpenses,
		ack:   s.acknowledgeExpenses,
		fetch: s.adapter.FetchExpenses,
		apply: s.applyExpenses,
	}
}
