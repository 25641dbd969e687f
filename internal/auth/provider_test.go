package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTokenFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestFileTokenProvider_OpaqueToken(t *testing.T) {
	path := writeTokenFile(t, "9c1f3b0a8d2e4f56\n")
	p := NewFileTokenProvider(path)

	token, err := p.Token()

	require.NoError(t, err)
	assert.Equal(t, "9c1f3b0a8d2e4f56", token)
	assert.True(t, p.IsAuthenticated())
}

func TestFileTokenProvider_ValidJWT(t *testing.T) {
	path := writeTokenFile(t, signedToken(t, time.Now().Add(time.Hour)))
	p := NewFileTokenProvider(path)

	token, err := p.Token()

	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestFileTokenProvider_ExpiredJWT(t *testing.T) {
	path := writeTokenFile(t, signedToken(t, time.Now().Add(-time.Hour)))
	p := NewFileTokenProvider(path)

	_, err := p.Token()

	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.False(t, p.IsAuthenticated())
}

func TestFileTokenProvider_MissingFile(t *testing.T) {
	p := NewFileTokenProvider(filepath.Join(t.TempDir(), "nope"))

	_, err := p.Token()

	assert.Error(t, err)
	assert.False(t, p.IsAuthenticated())
}

func TestFileTokenProvider_EmptyFile(t *testing.T) {
	path := writeTokenFile(t, "  \n")
	p := NewFileTokenProvider(path)

	_, err := p.Token()

	assert.Error(t, err)
}

func TestFileTokenProvider_RereadsFile(t *testing.T) {
	path := writeTokenFile(t, "first")
	p := NewFileTokenProvider(path)

	token, err := p.Token()
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))

	token, err = p.Token()
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestStaticTokenProvider(t *testing.T) {
	p := NewStaticTokenProvider("tok")
	token, err := p.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.True(t, p.IsAuthenticated())

	empty := NewStaticTokenProvider("")
	_, err = empty.Token()
	assert.Error(t, err)
	assert.False(t, empty.IsAuthenticated())
}
