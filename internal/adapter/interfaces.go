package adapter

import (
	"context"
	"time"

	"github.com/expenseai/go-expense-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter is the outbound transport boundary of the sync engine. Fetch
// methods pull transfer objects changed since the given checkpoint (nil on
// first sync; currencies are always a full pull). Push methods send dirty
// transfer objects and return exactly the items the server accepted — and
// only those items count as acknowledged.
//
// Every method requires a token previously installed via SetToken. A non-2xx
// response surfaces as *[NetworkError], an unreadable body as *[DecodeError];
// either aborts the sync cycle in progress.
type ServerAdapter interface {
	// SetToken stores the bearer token (whitespace-trimmed) used in the
	// Authorization header of all subsequent requests.
	SetToken(token string)

	// Token returns the currently installed bearer token, or "".
	Token() string

	// FetchCurrencies pulls the full currency reference table.
	FetchCurrencies(ctx context.Context) ([]models.CurrencyDTO, error)

	// FetchParticipants pulls participants changed since the checkpoint.
	FetchParticipants(ctx context.Context, since *time.Time) ([]models.ParticipantDTO, error)

	// PushParticipants uploads locally changed participants. Response items
	// with a non-nil ClientID represent server-side merges by email.
	PushParticipants(ctx context.Context, items []models.ParticipantDTO) ([]models.ParticipantDTO, error)

	// FetchGroups pulls groups changed since the checkpoint.
	FetchGroups(ctx context.Context, since *time.Time) ([]models.GroupDTO, error)

	// PushGroups uploads locally changed groups.
	PushGroups(ctx context.Context, items []models.GroupDTO) ([]models.GroupDTO, error)

	// FetchExpenses pulls expenses changed since the checkpoint.
	FetchExpenses(ctx context.Context, since *time.Time) ([]models.ExpenseDTO, error)

	// PushExpenses uploads locally changed expenses.
	PushExpenses(ctx context.Context, items []models.ExpenseDTO) ([]models.ExpenseDTO, error)
}
