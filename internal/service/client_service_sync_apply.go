package service

import (
	"context"
	"fmt"

	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/models"
)

// Reconciliation applies pulled records with last-write-wins semantics: a
// remote record replaces the local one only when its updatedAt is strictly
// newer. Equal timestamps keep the local row, which makes re-applying the
// same pull a no-op and overlapping checkpoint windows safe.

// applyParticipants reconciles pulled participants. Existing local records
// are looked up in one batch. Runs inside one transaction.
func (s *clientSyncService) applyParticipants(ctx context.Context, remote []models.ParticipantDTO) error {
	log := logger.FromContext(ctx)

	ids := make([]string, 0, len(remote))
	for _, dto := range remote {
		ids = append(ids, dto.ID)
	}
	existing, err := s.storages.ParticipantRepository.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load local participants: %w", err)
	}

	for _, dto := range remote {
		local, found := existing[dto.ID]
		if !found && dto.IsSoftDeleted {
			// tombstone for a record this device never had
			continue
		}
		if found && !dto.UpdatedAt.After(local.UpdatedAt) {
			continue
		}

		if dto.IsSoftDeleted {
			if err = s.storages.ParticipantRepository.Delete(ctx, dto.ID); err != nil {
				return fmt.Errorf("apply remote participant tombstone %s: %w", dto.ID, err)
			}
			continue
		}

		if err = s.storages.ParticipantRepository.Upsert(ctx, models.ParticipantFromDTO(dto)); err != nil {
			return fmt.Errorf("apply remote participant %s: %w", dto.ID, err)
		}
	}

	log.Debug().Int("count", len(remote)).Msg("participants reconciled")
	return nil
}

// applyGroups reconciles pulled groups. Existing local records are looked up
// in one batch. An unknown default currency becomes a NULL reference; unknown
// members are dropped by the storage layer. Runs inside one transaction.
func (s *clientSyncService) applyGroups(ctx context.Context, remote []models.GroupDTO) error {
	log := logger.FromContext(ctx)

	ids := make([]string, 0, len(remote))
	codes := make([]string, 0, len(remote))
	for _, dto := range remote {
		ids = append(ids, dto.ID)
		if dto.DefaultCurrencyCode != "" {
			codes = append(codes, dto.DefaultCurrencyCode)
		}
	}
	existing, err := s.storages.GroupRepository.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load local groups: %w", err)
	}
	knownCodes, err := s.storages.CurrencyRepository.ExistingCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("resolve group currencies: %w", err)
	}

	for _, dto := range remote {
		local, found := existing[dto.ID]
		if !found && dto.IsSoftDeleted {
			continue
		}
		if found && !dto.UpdatedAt.After(local.UpdatedAt) {
			continue
		}

		if dto.IsSoftDeleted {
			if err = s.storages.GroupRepository.Delete(ctx, dto.ID); err != nil {
				return fmt.Errorf("apply remote group tombstone %s: %w", dto.ID, err)
			}
			continue
		}

		g := models.GroupFromDTO(dto)
		if g.DefaultCurrencyCode != nil && !knownCodes[*g.DefaultCurrencyCode] {
			log.Warn().
				Str("group_id", g.ID).
				Str("currency_code", *g.DefaultCurrencyCode).
				Msg("pulled group references unknown currency, storing without it")
			g.DefaultCurrencyCode = nil
		}

		if err = s.storages.GroupRepository.Upsert(ctx, g); err != nil {
			return fmt.Errorf("apply remote group %s: %w", dto.ID, err)
		}
	}

	log.Debug().Int("count", len(remote)).Msg("groups reconciled")
	return nil
}

// applyExpenses reconciles pulled expenses. Existing local records are looked
// up in one batch. References to records this device does not have become
// NULL so the expense still lands and its amounts stay countable. Runs inside
// one transaction.
func (s *clientSyncService) applyExpenses(ctx context.Context, remote []models.ExpenseDTO) error {
	log := logger.FromContext(ctx)

	ids := make([]string, 0, len(remote))
	for _, dto := range remote {
		ids = append(ids, dto.ID)
	}
	existing, err := s.storages.ExpenseRepository.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load local expenses: %w", err)
	}

	refs := collectExpenseRefs(remote)
	knownGroups, err := s.storages.GroupRepository.ExistingIDs(ctx, refs.groupIDs)
	if err != nil {
		return fmt.Errorf("resolve expense groups: %w", err)
	}
	knownCodes, err := s.storages.CurrencyRepository.ExistingCodes(ctx, refs.currencyCodes)
	if err != nil {
		return fmt.Errorf("resolve expense currencies: %w", err)
	}
	knownParticipants, err := s.storages.ParticipantRepository.ExistingIDs(ctx, refs.participantIDs)
	if err != nil {
		return fmt.Errorf("resolve expense participants: %w", err)
	}

	for _, dto := range remote {
		local, found := existing[dto.ID]
		if !found && dto.IsSoftDeleted {
			continue
		}
		if found && !dto.UpdatedAt.After(local.UpdatedAt) {
			continue
		}

		if dto.IsSoftDeleted {
			if err = s.storages.ExpenseRepository.Delete(ctx, dto.ID); err != nil {
				return fmt.Errorf("apply remote expense tombstone %s: %w", dto.ID, err)
			}
			continue
		}

		e := models.ExpenseFromDTO(dto)
		dropUnknownRef(&e.GroupID, knownGroups, log, e.ID, "group")
		dropUnknownRef(&e.CurrencyCode, knownCodes, log, e.ID, "currency")
		dropUnknownRef(&e.PaidByID, knownParticipants, log, e.ID, "payer")
		for i := range e.Shares {
			dropUnknownRef(&e.Shares[i].ParticipantID, knownParticipants, log, e.ID, "share participant")
		}

		if err = s.storages.ExpenseRepository.Upsert(ctx, e); err != nil {
			return fmt.Errorf("apply remote expense %s: %w", dto.ID, err)
		}
	}

	log.Debug().Int("count", len(remote)).Msg("expenses reconciled")
	return nil
}

type expenseRefs struct {
	groupIDs       []string
	currencyCodes  []string
	participantIDs []string
}

func collectExpenseRefs(remote []models.ExpenseDTO) expenseRefs {
	var refs expenseRefs
	add := func(dst *[]string, seen map[string]bool, key string) {
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		*dst = append(*dst, key)
	}
	groups, codes, participants := map[string]bool{}, map[string]bool{}, map[string]bool{}

	for _, dto := range remote {
		add(&refs.groupIDs, groups, dto.GroupID)
		add(&refs.currencyCodes, codes, dto.CurrencyCode)
		add(&refs.participantIDs, participants, dto.PaidByID)
		for _, share := range dto.Shares {
			add(&refs.participantIDs, participants, share.ParticipantID)
		}
	}
	return refs
}

func dropUnknownRef(ref **string, known map[string]bool, log *logger.Logger, expenseID, kind string) {
	if *ref == nil || known[**ref] {
		return
	}
	log.Warn().
		Str("expense_id", expenseID).
		Str("ref", **ref).
		Msg("pulled expense references unknown " + kind + ", storing without it")
	*ref = nil
}
