// Package usecase implements the business logic for ticker read operations.
package usecase

import (
	"context"
	"strings"

	"finnews_backend/internal/feature/tickers/domain/entity"
)

const (
	// DefaultListLimit is the default page size for ticker listings.
	DefaultListLimit = 100
	// MaxListLimit caps the page size for ticker listings.
	MaxListLimit = 10000
	// DefaultSearchLimit is the default result count for ticker searches.
	DefaultSearchLimit = 50
)

// TickerRepository abstracts the read layer for persisted ticker data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TickerRepository interface {
	// List returns tickers ordered by symbol with limit/offset pagination.
	List(ctx context.Context, limit, offset int) ([]entity.Ticker, error)
	// ListByExchange returns tickers belonging to the given exchange code.
	ListByExchange(ctx context.Context, exchangeCode string, limit, offset int) ([]entity.Ticker, error)
	// Search returns tickers whose symbol or name contains the query, case-insensitive.
	Search(ctx context.Context, query string, limit int) ([]entity.Ticker, error)
	// FindBySymbol returns the ticker with the given symbol.
	FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error)
	// Count returns the total number of persisted tickers.
	Count(ctx context.Context) (int64, error)
}

// TickerUsecase provides business logic for ticker read operations.
type TickerUsecase struct {
	repo TickerRepository
}

// NewTickerUsecase creates a new TickerUsecase with the given repository.
func NewTickerUsecase(r TickerRepository) *TickerUsecase {
	return &TickerUsecase{repo: r}
}

// ListTickers returns a page of all persisted tickers.
func (u *TickerUsecase) ListTickers(ctx context.Context, limit, offset int) ([]entity.Ticker, error) {
	limit = clampLimit(limit, DefaultListLimit)
	if offset < 0 {
		offset = 0
	}
	return u.repo.List(ctx, limit, offset)
}

// ListTickersByExchange returns a page of tickers for one exchange code.
func (u *TickerUsecase) ListTickersByExchange(ctx context.Context, exchangeCode string, limit, offset int) ([]entity.Ticker, error) {
	limit = clampLimit(limit, MaxListLimit)
	if offset < 0 {
		offset = 0
	}
	return u.repo.ListByExchange(ctx, strings.ToUpper(exchangeCode), limit, offset)
}

// SearchTickers returns tickers matching the query by symbol or name.
func (u *TickerUsecase) SearchTickers(ctx context.Context, query string, limit int) ([]entity.Ticker, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	limit = clampLimit(limit, DefaultSearchLimit)
	return u.repo.Search(ctx, query, limit)
}

// GetTicker returns one ticker by symbol.
func (u *TickerUsecase) GetTicker(ctx context.Context, symbol string) (*entity.Ticker, error) {
	return u.repo.FindBySymbol(ctx, strings.ToUpper(strings.TrimSpace(symbol)))
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 || limit > MaxListLimit {
		return fallback
	}
	return limit
}
