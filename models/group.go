package models

import (
	"fmt"
	"time"
)

// Group is a named set of participants sharing expenses, with a default
// currency for new entries. Members and the currency are held by reference;
// deleting a group never deletes its participants.
type Group struct {
	ID                  string
	Name                string
	DefaultCurrencyCode *string
	MemberIDs           []string
	UpdatedAt           time.Time
	IsDeleted           bool
	NeedsSync           bool
}

// GroupDTO is the wire projection of [Group]. Relationships travel as bare
// identifiers: the currency by code, members as a list of participant ids.
type GroupDTO struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	DefaultCurrencyCode string   `json:"defaultCurrencyCode"`
	MemberIDs           []string `json:"memberIDs"`
	IsSoftDeleted       bool     `json:"isSoftDeleted"`
	UpdatedAt           WireTime `json:"updatedAt"`
}

// GroupFromDTO converts a pulled wire record into the local model. An empty
// currency code becomes a NULL reference rather than a dangling one.
func GroupFromDTO(dto GroupDTO) Group {
	g := Group{
		ID:        dto.ID,
		Name:      dto.Name,
		MemberIDs: dto.MemberIDs,
		UpdatedAt: dto.UpdatedAt.Time,
		IsDeleted: dto.IsSoftDeleted,
	}
	if dto.DefaultCurrencyCode != "" {
		code := dto.DefaultCurrencyCode
		g.DefaultCurrencyCode = &code
	}
	return g
}

// ToDTO converts the group to its wire projection. A group whose default
// currency cannot be resolved locally is not representable on the wire and
// yields [ErrMissingRelation].
func (g Group) ToDTO() (GroupDTO, error) {
	if g.DefaultCurrencyCode == nil {
		return GroupDTO{}, fmt.Errorf("group %s has no default currency: %w", g.ID, ErrMissingRelation)
	}

	members := g.MemberIDs
	if members == nil {
		members = []string{}
	}

	return GroupDTO{
		ID:                  g.ID,
		Name:                g.Name,
		DefaultCurrencyCode: *g.DefaultCurrencyCode,
		MemberIDs:           members,
		IsSoftDeleted:       g.IsDeleted,
		UpdatedAt:           NewWireTime(g.UpdatedAt),
	}, nil
}
