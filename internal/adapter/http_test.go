package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenseai/go-expense-sync/internal/config"
	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/models"
)

func newTestAdapter(t *testing.T, serverURL string) ServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{
		BaseURL:        serverURL,
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "https://api.example.com", want: "https://api.example.com"},
		{name: "trailing slash trimmed", raw: "https://api.example.com/", want: "https://api.example.com"},
		{name: "scheme defaulted", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "whitespace trimmed", raw: "  https://api.example.com  ", want: "https://api.example.com"},
		{name: "empty", raw: "", wantErr: true},
		{name: "blank", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidBaseURL(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{BaseURL: ""}, logger.Nop())
	assert.Error(t, err)
}

func TestFetchParticipants_SendsTokenAndSince(t *testing.T) {
	since := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

	var gotAuth, gotSince, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSince = r.URL.Query().Get("since")
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`[{"id":"p-1","name":"Ann","isSoftDeleted":false,"updatedAt":"2025-03-14T09:26:53.589Z"}]`))
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	a.SetToken("secret-token")

	items, err := a.FetchParticipants(context.Background(), &since)

	require.NoError(t, err)
	assert.Equal(t, "Token secret-token", gotAuth)
	assert.Equal(t, "2025-03-14T09:26:53.589Z", gotSince)
	assert.Equal(t, "/api/sync/participants/", gotPath)
	require.Len(t, items, 1)
	assert.Equal(t, "p-1", items[0].ID)
	assert.Equal(t, "Ann", items[0].Name)
}

func TestFetchParticipants_NoSinceOnFirstSync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("since"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	a.SetToken("t")

	items, err := a.FetchParticipants(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchCurrencies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/currencies/", r.URL.Path)
		assert.False(t, r.URL.Query().Has("since"))
		_, _ = w.Write([]byte(`[{"c_code":"USD","currency_name":"US Dollar","i_code":"840","currency_name_plural":"US dollars","decimal_digits":2,"rounding":0,"symbol":"$","symbol_native":"$"}]`))
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	a.SetToken("t")

	items, err := a.FetchCurrencies(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "USD", items[0].Code)
	assert.Equal(t, int64(2), items[0].DecimalDigits)
}

func TestPushExpenses_EchoIsAcknowledgment(t *testing.T) {
	sent := []models.ExpenseDTO{
		{
			ID:           "e-1",
			Description:  "Dinner",
			Amount:       42.50,
			GroupID:      "g-1",
			CurrencyCode: "EUR",
			PaidByID:     "p-1",
			Shares: []models.ExpenseShareDTO{
				{ID: "s-1", ParticipantID: "p-1", Amount: 42.50},
			},
			CreatedAt: models.NewWireTime(time.Now()),
			UpdatedAt: models.NewWireTime(time.Now()),
		},
		{ID: "e-2", Description: "Taxi", Amount: 10, GroupID: "g-1", CurrencyCode: "EUR", PaidByID: "p-1",
			CreatedAt: models.NewWireTime(time.Now()), UpdatedAt: models.NewWireTime(time.Now())},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/expenses/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var received []models.ExpenseDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		require.Len(t, received, 2)

		// The server accepts only the first item.
		_ = json.NewEncoder(w).Encode(received[:1])
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	a.SetToken("t")

	accepted, err := a.PushExpenses(context.Background(), sent)

	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, "e-1", accepted[0].ID)
}

func TestPushParticipants_MergeCarriesClientID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var received []models.ParticipantDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		require.Len(t, received, 1)

		clientID := received[0].ID
		received[0].ID = "canonical-id"
		received[0].ClientID = &clientID
		_ = json.NewEncoder(w).Encode(received)
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	a.SetToken("t")

	email := "ann@example.com"
	accepted, err := a.PushParticipants(context.Background(), []models.ParticipantDTO{
		{ID: "local-id", Name: "Ann", Email: &email, UpdatedAt: models.NewWireTime(time.Now())},
	})

	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, "canonical-id", accepted[0].ID)
	require.NotNil(t, accepted[0].ClientID)
	assert.Equal(t, "local-id", *accepted[0].ClientID)
}

func TestFetchGroups_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid token."}`))
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	a.SetToken("stale")

	_, err := a.FetchGroups(context.Background(), nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusUnauthorized, netErr.StatusCode)
	assert.Contains(t, netErr.Body, "Invalid token")
}

func TestFetchExpenses_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	a.SetToken("t")

	_, err := a.FetchExpenses(context.Background(), nil)

	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestPushGroups_ServerErrorAbortsWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL)
	a.SetToken("t")

	_, err := a.PushGroups(context.Background(), []models.GroupDTO{{ID: "g-1", Name: "Trip"}})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
	assert.Equal(t, "boom", netErr.Body)
}

func TestSetToken_TrimsWhitespace(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:9")
	a.SetToken("  tok \n")
	assert.Equal(t, "tok", a.Token())
}
