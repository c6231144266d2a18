package usecase

import "errors"

var (
	// ErrTickerNotFound is returned when no ticker exists for the requested symbol.
	ErrTickerNotFound = errors.New("ticker not found")

	// ErrUnknownExchange is returned when an exchange code has no catalog entry.
	ErrUnknownExchange = errors.New("unknown exchange")

	// ErrEmptyQuery is returned when a search is attempted with a blank query.
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrDuplicateSymbol is returned when a write collides with the unique
	// symbol constraint.
	ErrDuplicateSymbol = errors.New("duplicate ticker symbol")
)
