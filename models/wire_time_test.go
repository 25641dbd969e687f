package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireTime_MarshalFixedLayout(t *testing.T) {
	wt := NewWireTime(time.Date(2025, 3, 14, 9, 26, 53, 589_793_238, time.UTC))

	data, err := json.Marshal(wt)

	require.NoError(t, err)
	assert.Equal(t, `"2025-03-14T09:26:53.589Z"`, string(data))
}

func TestWireTime_MarshalNormalisesZone(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	wt := NewWireTime(time.Date(2025, 3, 14, 11, 26, 53, 0, loc))

	data, err := json.Marshal(wt)

	require.NoError(t, err)
	assert.Equal(t, `"2025-03-14T09:26:53.000Z"`, string(data))
}

func TestWireTime_RoundTripExact(t *testing.T) {
	// Both directions must use the identical format so that updatedAt
	// comparisons between pushed and pulled copies of a record are exact.
	orig := NewWireTime(time.Now())

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back WireTime
	require.NoError(t, json.Unmarshal(data, &back))

	assert.True(t, orig.Equal(back.Time), "round trip changed the instant: %v != %v", orig, back)
}

func TestWireTime_UnmarshalAcceptsExtraFraction(t *testing.T) {
	var wt WireTime

	err := json.Unmarshal([]byte(`"2025-03-14T09:26:53.589793Z"`), &wt)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC), wt.Time)
}

func TestWireTime_UnmarshalRejectsGarbage(t *testing.T) {
	var wt WireTime

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &wt))
	assert.Error(t, json.Unmarshal([]byte(`12345`), &wt))
}

func TestParticipantDTO_NeverSendsClientID(t *testing.T) {
	email := "ann@example.com"
	p := Participant{ID: NewID(), Name: "Ann", Email: &email, UpdatedAt: time.Now(), NeedsSync: true}

	data, err := json.Marshal(p.ToDTO())

	require.NoError(t, err)
	assert.NotContains(t, string(data), "clientId")
}

func TestExpenseToDTO_MissingRelations(t *testing.T) {
	groupID, currency, payer := NewID(), "USD", NewID()

	complete := Expense{
		ID: NewID(), Description: "dinner", Amount: 42.50,
		GroupID: &groupID, CurrencyCode: &currency, PaidByID: &payer,
		Shares:    []ExpenseShare{{ID: NewID(), ParticipantID: &payer, Amount: 42.50}},
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	_, err := complete.ToDTO()
	require.NoError(t, err)

	noPayer := complete
	noPayer.PaidByID = nil
	_, err = noPayer.ToDTO()
	assert.ErrorIs(t, err, ErrMissingRelation)

	orphanShare := complete
	orphanShare.Shares = []ExpenseShare{{ID: NewID(), Amount: 1}}
	_, err = orphanShare.ToDTO()
	assert.ErrorIs(t, err, ErrMissingRelation)
}

func TestGroupToDTO_RequiresCurrency(t *testing.T) {
	g := Group{ID: NewID(), Name: "Trip", UpdatedAt: time.Now()}

	_, err := g.ToDTO()

	assert.ErrorIs(t, err, ErrMissingRelation)
}
