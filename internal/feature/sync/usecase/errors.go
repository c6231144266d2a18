// Package usecase implements the ticker synchronization workflow.
package usecase

import "errors"

var (
	// ErrSyncAlreadyRunning is returned when a trigger arrives while a run
	// holds the slot. The rejected call performs no state mutation.
	ErrSyncAlreadyRunning = errors.New("sync already in progress")

	// ErrUnknownExchange is returned when a requested exchange code has no
	// catalog entry.
	ErrUnknownExchange = errors.New("unknown exchange")

	// ErrSourceUnavailable is returned when the symbol source cannot be
	// reached or answers with a non-success status.
	ErrSourceUnavailable = errors.New("symbol source unavailable")

	// ErrMalformedResponse is returned when the symbol source payload or one
	// of its records cannot be parsed into the expected shape.
	ErrMalformedResponse = errors.New("malformed symbol source response")
)
