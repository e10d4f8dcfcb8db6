package services

import "errors"

var (
	// ErrInvalidCredentials covers unknown email, wrong password and accounts
	// without a local credential.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned by Register when the email already belongs to a user.
	ErrEmailTaken = errors.New("user already exists")

	// ErrUserNotFound is returned by UserStore lookups that match nothing.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidState is returned when an OAuth state parameter is forged,
	// expired or does not match the browser's nonce.
	ErrInvalidState = errors.New("invalid oauth state")
)
