package services

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type stateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// StateSigner issues and checks the OAuth state parameter. A state is an
// HS256 token carrying a nonce that must also be presented by the browser
// in a cookie.
type StateSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewStateSigner creates a signer keyed by secret.
func NewStateSigner(secret string, ttl time.Duration) *StateSigner {
	return &StateSigner{key: []byte(secret), ttl: ttl, now: time.Now}
}

// NewNonce returns a random value to bind a state to the browser.
func NewNonce() (string, error) {
	return randomToken(16)
}

// Sign returns a state token for nonce.
func (s *StateSigner) Sign(nonce string) (string, error) {
	now := s.now()
	claims := stateClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	return state, nil
}

// Verify checks the signature and expiry of state and that it was issued for nonce.
func (s *StateSigner) Verify(state, nonce string) error {
	var claims stateClaims
	_, err := jwt.ParseWithClaims(state, &claims,
		func(*jwt.Token) (interface{}, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	if nonce == "" || subtle.ConstantTimeCompare([]byte(claims.Nonce), []byte(nonce)) != 1 {
		return ErrInvalidState
	}
	return nil
}
