package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier hashes local passwords and checks them against stored hashes.
type CredentialVerifier interface {
	Hash(plaintext string) (string, error)
	// Verify returns (false, nil) on a mismatch. Any error means the hash could
	// not be checked and must not be reported as a wrong password.
	Verify(plaintext, hash string) (bool, error)
}

// BcryptVerifier implements CredentialVerifier with bcrypt.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier returns a verifier hashing at the given cost.
// A zero cost selects bcrypt.DefaultCost.
func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{cost: cost}
}

func (v *BcryptVerifier) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (v *BcryptVerifier) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
}
