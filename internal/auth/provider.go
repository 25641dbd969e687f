// Package auth supplies the API token the sync engine attaches to every
// request. Token acquisition (login, refresh) happens outside this
// application; the engine only needs to know whether a usable token exists.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

//go:generate mockgen -source=provider.go -destination=../mock/auth_mock.go -package=mock

// ErrTokenExpired is returned by Token when the stored token is JWT-shaped
// and its exp claim lies in the past.
var ErrTokenExpired = errors.New("stored token is expired")

// TokenProvider yields the bearer token for sync requests.
type TokenProvider interface {
	// Token returns the current token, or an error when none is usable.
	Token() (string, error)

	// IsAuthenticated reports whether a usable token is currently available.
	IsAuthenticated() bool
}

// fileTokenProvider reads the token the login flow persisted to disk. The
// file is re-read on every call: the login flow may replace it at any time
// while the client is running.
type fileTokenProvider struct {
	path string
	now  func() time.Time
}

// NewFileTokenProvider constructs a [TokenProvider] backed by the token file
// at path.
func NewFileTokenProvider(path string) TokenProvider {
	return &fileTokenProvider{path: path, now: time.Now}
}

func (p *fileTokenProvider) Token() (string, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", p.path)
	}

	if expired, ok := jwtExpired(token, p.now()); ok && expired {
		return "", ErrTokenExpired
	}

	return token, nil
}

func (p *fileTokenProvider) IsAuthenticated() bool {
	_, err := p.Token()
	return err == nil
}

// jwtExpired inspects a JWT-shaped token's exp claim without verifying the
// signature (the server remains the authority; this only avoids doomed sync
// cycles). Opaque tokens report ok=false and are passed through untouched.
func jwtExpired(token string, now time.Time) (expired, ok bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, false
	}

	return exp.Before(now), true
}

// staticTokenProvider holds a fixed token. Used in tests and by embedders
// that manage the token themselves.
type staticTokenProvider struct {
	token string
}

// NewStaticTokenProvider constructs a [TokenProvider] that always returns
// token. An empty token reads as not authenticated.
func NewStaticTokenProvider(token string) TokenProvider {
	return &staticTokenProvider{token: token}
}

func (p *staticTokenProvider) Token() (string, error) {
	if p.token == "" {
		return "", errors.New("no token configured")
	}
	return p.token, nil
}

func (p *staticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}
