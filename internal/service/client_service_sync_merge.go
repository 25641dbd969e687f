package service

import (
	"context"
	"fmt"

	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/models"
)

// acknowledgeParticipants processes the push echo for participants. Echoed
// items are the acknowledgment set: identity merges are resolved first, then
// acked tombstones are physically removed and everything else goes clean.
// Runs inside one transaction.
func (s *clientSyncService) acknowledgeParticipants(ctx context.Context, accepted []models.ParticipantDTO) error {
	log := logger.FromContext(ctx)

	clean := make([]string, 0, len(accepted))
	for _, dto := range accepted {
		if dto.ClientID != nil && *dto.ClientID != dto.ID {
			if err := s.resolveParticipantMerge(ctx, *dto.ClientID, dto.ID); err != nil {
				return err
			}
		}

		if dto.IsSoftDeleted {
			if err := s.storages.ParticipantRepository.Delete(ctx, dto.ID); err != nil {
				return fmt.Errorf("reconcile acked participant tombstone %s: %w", dto.ID, err)
			}
			continue
		}
		clean = append(clean, dto.ID)
	}

	if err := s.storages.ParticipantRepository.ClearNeedsSync(ctx, clean); err != nil {
		return fmt.Errorf("clear acked participants: %w", err)
	}

	log.Debug().
		Int("acked", len(accepted)).
		Int("cleared", len(clean)).
		Msg("participant push acknowledged")
	return nil
}

// resolveParticipantMerge adopts the canonical server id for a participant
// the server merged by email. If the canonical id is already known locally
// (the other device's copy arrived in an earlier pull) the local duplicate is
// folded into it; otherwise the local id is rewritten in place, references
// included.
func (s *clientSyncService) resolveParticipantMerge(ctx context.Context, localID, canonicalID string) error {
	log := logger.FromContext(ctx)

	existing, err := s.storages.ParticipantRepository.ExistingIDs(ctx, []string{canonicalID})
	if err != nil {
		return fmt.Errorf("resolve participant merge %s -> %s: %w", localID, canonicalID, err)
	}

	if existing[canonicalID] {
		if err = s.storages.ParticipantRepository.MergeInto(ctx, localID, canonicalID); err != nil {
			return fmt.Errorf("fold merged participant %s into %s: %w", localID, canonicalID, err)
		}
		log.Info().
			Str("local_id", localID).
			Str("canonical_id", canonicalID).
			Msg("server merged participant into an already known record")
		return nil
	}

	if err = s.storages.ParticipantRepository.RewriteID(ctx, localID, canonicalID); err != nil {
		return fmt.Errorf("adopt canonical participant id %s -> %s: %w", localID, canonicalID, err)
	}
	log.Info().
		Str("local_id", localID).
		Str("canonical_id", canonicalID).
		Msg("adopted canonical participant id from server merge")
	return nil
}

// acknowledgeGroups processes the push echo for groups. Runs inside one
// transaction.
func (s *clientSyncService) acknowledgeGroups(ctx context.Context, accepted []models.GroupDTO) error {
	clean := make([]string, 0, len(accepted))
	for _, dto := range accepted {
		if dto.IsSoftDeleted {
			if err := s.storages.GroupRepository.Delete(ctx, dto.ID); err != nil {
				return fmt.Errorf("reconcile acked group tombstone %s: %w", dto.ID, err)
			}
			continue
		}
		clean = append(clean, dto.ID)
	}

	if err := s.storages.GroupRepository.ClearNeedsSync(ctx, clean); err != nil {
		return fmt.Errorf("clear acked groups: %w", err)
	}
	return nil
}

// acknowledgeExpenses processes the push echo for expenses. Runs inside one
// transaction.
func (s *clientSyncService) acknowledgeExpenses(ctx context.Context, accepted []models.ExpenseDTO) error {
	clean := make([]string, 0, len(accepted))
	for _, dto := range accepted {
		if dto.IsSoftDeleted {
			if err := s.storages.ExpenseRepository.Delete(ctx, dto.ID); err != nil {
				return fmt.Errorf("reconcile acked expense tombstone %s: %w", dto.ID, err)
			}
			continue
		}
		clean = append(clean, dto.ID)
	}

	if err := s.storages.ExpenseRepository.ClearNeedsSync(ctx, clean); err != nil {
		return fmt.Errorf("clear acked expenses: %w", err)
	}
	return nil
}
