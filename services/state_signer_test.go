package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSigner(t *testing.T) {
	signer := NewStateSigner("state-secret", 10*time.Minute)

	nonce, err := NewNonce()
	require.NoError(t, err)

	state, err := signer.Sign(nonce)
	require.NoError(t, err)

	assert.NoError(t, signer.Verify(state, nonce))
	assert.ErrorIs(t, signer.Verify(state, "other-nonce"), ErrInvalidState)
	assert.ErrorIs(t, signer.Verify(state, ""), ErrInvalidState)
}

func TestStateSignerRejectsForeignKey(t *testing.T) {
	state, err := NewStateSigner("one-secret", time.Minute).Sign("nonce")
	require.NoError(t, err)

	err = NewStateSigner("another-secret", time.Minute).Verify(state, "nonce")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStateSignerExpiry(t *testing.T) {
	signer := NewStateSigner("state-secret", time.Minute)
	now := time.Now()
	signer.now = func() time.Time { return now }

	state, err := signer.Sign("nonce")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, signer.Verify(state, "nonce"), ErrInvalidState)
}

func TestStateSignerRejectsGarbage(t *testing.T) {
	signer := NewStateSigner("state-secret", time.Minute)
	assert.ErrorIs(t, signer.Verify("not-a-token", "nonce"), ErrInvalidState)
}
