package models

import "time"

// Participant is a person taking part in shared expenses. Participants are
// created on any device and identified by a client-generated id; the server
// may later merge two participants that share an email address (see
// [ParticipantDTO.ClientID]).
type Participant struct {
	ID        string
	Name      string
	Email     *string
	Phone     *string
	UpdatedAt time.Time
	IsDeleted bool
	NeedsSync bool
}

// ParticipantDTO is the wire projection of [Participant].
type ParticipantDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         *string  `json:"email,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	IsSoftDeleted bool     `json:"isSoftDeleted"`
	UpdatedAt     WireTime `json:"updatedAt"`

	// ClientID is populated by the server, and only on a push response item
	// that represents a merge-by-email outcome: ClientID is the id the client
	// originally sent, ID the canonical id to use going forward. The client
	// never sends this field.
	ClientID *string `json:"clientId,omitempty"`
}

// ParticipantFromDTO converts a pulled wire record into the local model. The
// caller decides the dirty flag; pulled records are stored clean.
func ParticipantFromDTO(dto ParticipantDTO) Participant {
	return Participant{
		ID:        dto.ID,
		Name:      dto.Name,
		Email:     dto.Email,
		Phone:     dto.Phone,
		UpdatedAt: dto.UpdatedAt.Time,
		IsDeleted: dto.IsSoftDeleted,
	}
}

// ToDTO converts the participant to its wire projection. The clientId field
// is always left empty on outgoing records.
func (p Participant) ToDTO() ParticipantDTO {
	return ParticipantDTO{
		ID:            p.ID,
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		IsSoftDeleted: p.IsDeleted,
		UpdatedAt:     NewWireTime(p.UpdatedAt),
	}
}
