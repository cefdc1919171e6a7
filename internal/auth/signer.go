// Package auth mints the short-lived bearer tokens the Kling API expects.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenTTL is how long a minted token stays valid.
	TokenTTL = 1800 * time.Second
	// ClockSkew backdates not-before to tolerate clock drift with the server.
	ClockSkew = 5 * time.Second
)

// Static errors for token signing.
var (
	// ErrAccessKeyRequired is returned when the access key is empty.
	ErrAccessKeyRequired = errors.New("auth: access key is required")
	// ErrSecretKeyRequired is returned when the secret key is empty.
	ErrSecretKeyRequired = errors.New("auth: secret key is required")
)

// TokenSource produces a bearer token for one outbound request.
type TokenSource interface {
	Token() (string, error)
}

// Sign returns an HS256 JWT with issuer accessKey, not-before now-ClockSkew
// and expiry now+TokenTTL.
func Sign(accessKey, secretKey string, now time.Time) (string, error) {
	if accessKey == "" {
		return "", ErrAccessKeyRequired
	}
	if secretKey == "" {
		return "", ErrSecretKeyRequired
	}

	claims := jwt.RegisteredClaims{
		Issuer:    accessKey,
		NotBefore: jwt.NewNumericDate(now.Add(-ClockSkew)),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// Signer is a TokenSource that mints a fresh token on every call.
type Signer struct {
	accessKey string
	secretKey string
	now       func() time.Time
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithNow overrides the clock used for issued-at calculations.
func WithNow(now func() time.Time) SignerOption {
	return func(s *Signer) {
		s.now = now
	}
}

// NewSigner creates a Signer for the given key pair.
func NewSigner(accessKey, secretKey string, opts ...SignerOption) (*Signer, error) {
	if accessKey == "" {
		return nil, ErrAccessKeyRequired
	}
	if secretKey == "" {
		return nil, ErrSecretKeyRequired
	}

	s := &Signer{
		accessKey: accessKey,
		secretKey: secretKey,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AccessKey returns the issuer the signer mints tokens for.
func (s *Signer) AccessKey() string {
	return s.accessKey
}

// Token mints a new token. Tokens are never cached.
func (s *Signer) Token() (string, error) {
	return Sign(s.accessKey, s.secretKey, s.now())
}

// Compile-time check that Signer implements TokenSource.
var _ TokenSource = (*Signer)(nil)
