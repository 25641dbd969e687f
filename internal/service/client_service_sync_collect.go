package service

import (
	"context"
	"errors"

	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/models"
)

// collectGroupDTOs converts dirty groups to wire records. A group that cannot
// be represented on the wire yet (missing default currency) is logged and
// held back; it stays dirty and is retried next cycle.
func collectGroupDTOs(ctx context.Context, pending []models.Group) []models.GroupDTO {
	log := logger.FromContext(ctx)

	dtos := make([]models.GroupDTO, 0, len(pending))
	for _, g := range pending {
		dto, err := g.ToDTO()
		if err != nil {
			if errors.Is(err, models.ErrMissingRelation) {
				log.Warn().
					Str("group_id", g.ID).
					Msg("holding back group with unresolved relations")
				continue
			}
			log.Err(err).Str("group_id", g.ID).Msg("cannot convert group for upload")
			continue
		}
		dtos = append(dtos, dto)
	}

	return dtos
}

// collectExpenseDTOs converts dirty expenses to wire records, holding back
// records with unresolved relations the same way.
func collectExpenseDTOs(ctx context.Context, pending []models.Expense) []models.ExpenseDTO {
	log := logger.FromContext(ctx)

	dtos := make([]models.ExpenseDTO, 0, len(pending))
	for _, e := range pending {
		dto, err := e.ToDTO()
		if err != nil {
			if errors.Is(err, models.ErrMissingRelation) {
				log.Warn().
					Str("expense_id", e.ID).
					Msg("holding back expense with unresolved relations")
				continue
			}
			log.Err(err).Str("expense_id", e.ID).Msg("cannot convert expense for upload")
			continue
		}
		dtos = append(dtos, dto)
	}

	return dtos
}
