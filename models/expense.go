package models

import (
	"fmt"
	"time"
)

// Expense is a single shared cost (or, when IsSettlement is set, a debt
// repayment) inside a group. The group, currency and payer references are
// nullable on the local side: a pull may legitimately arrive before the
// records it points to, and reconciliation stores what it can resolve.
type Expense struct {
	ID           string
	Description  string
	Amount       float64
	IsSettlement bool
	GroupID      *string
	CurrencyCode *string
	PaidByID     *string
	Shares       []ExpenseShare
	CreatedAt    time.Time
	UpdatedAt    time.Time
	IsDeleted    bool
	NeedsSync    bool
}

// ExpenseShare is one participant's owed portion of an expense. Shares have
// no timestamp and no tombstone of their own: their lifecycle is owned by the
// parent expense, and the whole set is replaced whenever the expense changes.
type ExpenseShare struct {
	ID            string
	ParticipantID *string
	Amount        float64
}

// ExpenseDTO is the wire projection of [Expense].
type ExpenseDTO struct {
	ID            string            `json:"id"`
	Description   string            `json:"desc"`
	Amount        float64           `json:"amount"`
	IsSettlement  bool              `json:"is_settlement"`
	GroupID       string            `json:"groupID"`
	CurrencyCode  string            `json:"currencyCode"`
	PaidByID      string            `json:"paidByID"`
	Shares        []ExpenseShareDTO `json:"shares"`
	IsSoftDeleted bool              `json:"isSoftDeleted"`
	CreatedAt     WireTime          `json:"createdAt"`
	UpdatedAt     WireTime          `json:"updatedAt"`
}

// ExpenseShareDTO is the wire projection of [ExpenseShare].
type ExpenseShareDTO struct {
	ID            string  `json:"id"`
	ParticipantID string  `json:"participantID"`
	Amount        float64 `json:"amount"`
}

// ExpenseFromDTO converts a pulled wire record into the local model. Empty
// reference fields become NULL references.
func ExpenseFromDTO(dto ExpenseDTO) Expense {
	e := Expense{
		ID:           dto.ID,
		Description:  dto.Description,
		Amount:       dto.Amount,
		IsSettlement: dto.IsSettlement,
		CreatedAt:    dto.CreatedAt.Time,
		UpdatedAt:    dto.UpdatedAt.Time,
		IsDeleted:    dto.IsSoftDeleted,
	}
	e.GroupID = optional(dto.GroupID)
	e.CurrencyCode = optional(dto.CurrencyCode)
	e.PaidByID = optional(dto.PaidByID)

	for _, share := range dto.Shares {
		e.Shares = append(e.Shares, ExpenseShare{
			ID:            share.ID,
			ParticipantID: optional(share.ParticipantID),
			Amount:        share.Amount,
		})
	}
	return e
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToDTO converts the expense to its wire projection. The wire format requires
// resolvable group, currency and payer references, and a participant on every
// share; any hole yields [ErrMissingRelation] so the collector can skip the
// record without aborting the batch.
func (e Expense) ToDTO() (ExpenseDTO, error) {
	if e.GroupID == nil || e.CurrencyCode == nil || e.PaidByID == nil {
		return ExpenseDTO{}, fmt.Errorf("expense %s (%q) has unresolved references: %w", e.ID, e.Description, ErrMissingRelation)
	}

	shares := make([]ExpenseShareDTO, 0, len(e.Shares))
	for _, share := range e.Shares {
		if share.ParticipantID == nil {
			return ExpenseDTO{}, fmt.Errorf("expense %s has a share without a participant: %w", e.ID, ErrMissingRelation)
		}
		shares = append(shares, ExpenseShareDTO{
			ID:            share.ID,
			ParticipantID: *share.ParticipantID,
			Amount:        share.Amount,
		})
	}

	return ExpenseDTO{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		IsSettlement:  e.IsSettlement,
		GroupID:       *e.GroupID,
		CurrencyCode:  *e.CurrencyCode,
		PaidByID:      *e.PaidByID,
		Shares:        shares,
		IsSoftDeleted: e.IsDeleted,
		CreatedAt:     NewWireTime(e.CreatedAt),
		UpdatedAt:     NewWireTime(e.UpdatedAt),
	}, nil
}
