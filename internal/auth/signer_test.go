package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseClaims(t *testing.T, token, secret string) *jwt.RegisteredClaims {
	t.Helper()
	claims := &jwt.RegisteredClaims{}
	// Time-based validation is skipped so fixed clocks in the past still parse.
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	return claims
}

func TestSign_Claims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, err := Sign("ak-test", "secret", now)
	require.NoError(t, err)

	claims := parseClaims(t, token, "secret")
	assert.Equal(t, "ak-test", claims.Issuer)
	assert.Equal(t, now.Add(-5*time.Second).Unix(), claims.NotBefore.Unix())
	assert.Equal(t, now.Add(1800*time.Second).Unix(), claims.ExpiresAt.Unix())
}

func TestSign_WrongSecretFails(t *testing.T) {
	token, err := Sign("ak-test", "secret", time.Now())
	require.NoError(t, err)

	_, err = jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}

func TestSign_MissingKeys(t *testing.T) {
	_, err := Sign("", "secret", time.Now())
	assert.ErrorIs(t, err, ErrAccessKeyRequired)

	_, err = Sign("ak", "", time.Now())
	assert.ErrorIs(t, err, ErrSecretKeyRequired)
}

func TestNewSigner_MissingKeys(t *testing.T) {
	_, err := NewSigner("", "secret")
	assert.ErrorIs(t, err, ErrAccessKeyRequired)

	_, err = NewSigner("ak", "")
	assert.ErrorIs(t, err, ErrSecretKeyRequired)
}

func TestSigner_MintsPerCall(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	signer, err := NewSigner("ak-test", "secret", WithNow(func() time.Time { return current }))
	require.NoError(t, err)
	assert.Equal(t, "ak-test", signer.AccessKey())

	first, err := signer.Token()
	require.NoError(t, err)

	current = current.Add(time.Hour)
	second, err := signer.Token()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	claims := parseClaims(t, second, "secret")
	assert.Equal(t, current.Add(TokenTTL).Unix(), claims.ExpiresAt.Unix())
}

func TestSigner_TokenValidNow(t *testing.T) {
	signer, err := NewSigner("ak-test", "secret")
	require.NoError(t, err)

	token, err := signer.Token()
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte("secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer("ak-test"))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}
