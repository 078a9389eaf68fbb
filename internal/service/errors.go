package service

import (
	"errors"

	"backr/internal/repository"
)

// ErrNotFound is re-exported so handlers map it without importing the
// repository package.
var ErrNotFound = repository.ErrNotFound

var (
	// ErrForbidden means the authenticated wallet is not allowed to act on
	// the resource it addressed.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation wraps input problems caught before any query runs.
	ErrValidation = errors.New("invalid input")
	// ErrPaymentUnverified means the supplied transaction hash could not be
	// verified on-chain; no ledger row is written in that case.
	ErrPaymentUnverified = errors.New("payment not verified")
	// ErrUsernameTaken means another creator already claimed the username.
	ErrUsernameTaken = errors.New("username already taken")
)
