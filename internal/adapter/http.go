package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/expenseai/go-expense-sync/internal/config"
	"github.com/expenseai/go-expense-sync/internal/logger"
	"github.com/expenseai/go-expense-sync/models"
)

// Per-entity endpoint paths. Pull is a GET with an optional since query
// parameter; push is a POST with a JSON array body.
const (
	participantsEndpoint = "/api/sync/participants/"
	groupsEndpoint       = "/api/sync/groups/"
	expensesEndpoint     = "/api/sync/expenses/"
	currenciesEndpoint   = "/api/sync/currencies/"
)

type httpServerAdapter struct {
	client *resty.Client
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.BaseURL and configures the underlying client with the resolved
// base URL and request timeout.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// FetchCurrencies implements [ServerAdapter]. Currencies are reference data
// and are always pulled in full, so no since parameter is sent.
func (h *httpServerAdapter) FetchCurrencies(ctx context.Context) ([]models.CurrencyDTO, error) {
	return fetchList[models.CurrencyDTO](h, ctx, currenciesEndpoint, nil)
}

// FetchParticipants implements [ServerAdapter].
func (h *httpServerAdapter) FetchParticipants(ctx context.Context, since *time.Time) ([]models.ParticipantDTO, error) {
	return fetchList[models.ParticipantDTO](h, ctx, participantsEndpoint, since)
}

// PushParticipants implements [ServerAdapter].
func (h *httpServerAdapter) PushParticipants(ctx context.Context, items []models.ParticipantDTO) ([]models.ParticipantDTO, error) {
	return postList(h, ctx, participantsEndpoint, items)
}

// FetchGroups implements [ServerAdapter].
func (h *httpServerAdapter) FetchGroups(ctx context.Context, since *time.Time) ([]models.GroupDTO, error) {
	return fetchList[models.GroupDTO](h, ctx, groupsEndpoint, since)
}

// PushGroups implements [ServerAdapter].
func (h *httpServerAdapter) PushGroups(ctx context.Context, items []models.GroupDTO) ([]models.GroupDTO, error) {
	return postList(h, ctx, groupsEndpoint, items)
}

// FetchExpenses implements [ServerAdapter].
func (h *httpServerAdapter) FetchExpenses(ctx context.Context, since *time.Time) ([]models.ExpenseDTO, error) {
	return fetchList[models.ExpenseDTO](h, ctx, expensesEndpoint, since)
}

// PushExpenses implements [ServerAdapter].
func (h *httpServerAdapter) PushExpenses(ctx context.Context, items []models.ExpenseDTO) ([]models.ExpenseDTO, error) {
	return postList(h, ctx, expensesEndpoint, items)
}

// fetchList GETs endpoint (optionally filtered with since) and decodes the
// JSON array response.
func fetchList[T any](h *httpServerAdapter, ctx context.Context, endpoint string, since *time.Time) ([]T, error) {
	req := h.authedRequest(ctx)
	if since != nil {
		req.SetQueryParam("since", models.FormatWireTime(*since))
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []T
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, &DecodeError{Err: err}
	}

	h.logger.Debug().Str("endpoint", endpoint).Int("count", len(items)).Msg("pulled records")
	return items, nil
}

// postList POSTs items as a JSON array to endpoint and decodes the echoed
// (possibly server-corrected) items from the response.
func postList[T any](h *httpServerAdapter, ctx context.Context, endpoint string, items []T) ([]T, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(items).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("push %s: %w", endpoint, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var accepted []T
	if err = json.Unmarshal(resp.Body(), &accepted); err != nil {
		return nil, &DecodeError{Err: err}
	}

	h.logger.Debug().Str("endpoint", endpoint).Int("sent", len(items)).Int("accepted", len(accepted)).Msg("pushed records")
	return accepted, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Token "+h.token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return &NetworkError{
		StatusCode: resp.StatusCode(),
		Body:       strings.TrimSpace(string(resp.Body())),
	}
}
