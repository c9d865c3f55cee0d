package types

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTimedOut is returned when the polling budget is exhausted before the
	// transaction reaches the required confirmation depth. The transaction may
	// still confirm later.
	ErrTimedOut = errors.New("confirmation timed out")

	// ErrTransactionFailed is returned when the chain reports the transaction
	// as reverted or failed.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrSubmission is returned when a transaction could not be created,
	// signed or broadcast.
	ErrSubmission = errors.New("submission failed")

	// ErrInvalidAddress is returned for malformed TRON addresses
	ErrInvalidAddress = errors.New("invalid address")
)
