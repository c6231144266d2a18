package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"finnews_backend/internal/feature/tickers/domain/entity"
	"finnews_backend/internal/feature/tickers/usecase"
)

// mockTickerRepository is a configurable mock of the TickerRepository interface.
type mockTickerRepository struct {
	ListFunc           func(ctx context.Context, limit, offset int) ([]entity.Ticker, error)
	ListByExchangeFunc func(ctx context.Context, exchangeCode string, limit, offset int) ([]entity.Ticker, error)
	SearchFunc         func(ctx context.Context, query string, limit int) ([]entity.Ticker, error)
	FindBySymbolFunc   func(ctx context.Context, symbol string) (*entity.Ticker, error)
	CountFunc          func(ctx context.Context) (int64, error)
}

func (m *mockTickerRepository) List(ctx context.Context, limit, offset int) ([]entity.Ticker, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockTickerRepository) ListByExchange(ctx context.Context, exchangeCode string, limit, offset int) ([]entity.Ticker, error) {
	if m.ListByExchangeFunc != nil {
		return m.ListByExchangeFunc(ctx, exchangeCode, limit, offset)
	}
	return nil, nil
}

func (m *mockTickerRepository) Search(ctx context.Context, query string, limit int) ([]entity.Ticker, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockTickerRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error) {
	if m.FindBySymbolFunc != nil {
		return m.FindBySymbolFunc(ctx, symbol)
	}
	return nil, nil
}

func (m *mockTickerRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func TestTickerUsecase_ListTickers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		limit        int
		offset       int
		wantedLimit  int
		wantedOffset int
	}{
		{name: "defaults applied for zero limit", limit: 0, offset: 0, wantedLimit: usecase.DefaultListLimit, wantedOffset: 0},
		{name: "negative offset clamped", limit: 10, offset: -5, wantedLimit: 10, wantedOffset: 0},
		{name: "oversized limit falls back to default", limit: usecase.MaxListLimit + 1, offset: 20, wantedLimit: usecase.DefaultListLimit, wantedOffset: 20},
		{name: "explicit values passed through", limit: 25, offset: 50, wantedLimit: 25, wantedOffset: 50},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotLimit, gotOffset int
			repo := &mockTickerRepository{
				ListFunc: func(ctx context.Context, limit, offset int) ([]entity.Ticker, error) {
					gotLimit, gotOffset = limit, offset
					return []entity.Ticker{{Symbol: "AAPL"}}, nil
				},
			}
			uc := usecase.NewTickerUsecase(repo)

			out, err := uc.ListTickers(context.Background(), tt.limit, tt.offset)

			assert.NoError(t, err)
			assert.Len(t, out, 1)
			assert.Equal(t, tt.wantedLimit, gotLimit)
			assert.Equal(t, tt.wantedOffset, gotOffset)
		})
	}
}

func TestTickerUsecase_ListTickersByExchange(t *testing.T) {
	t.Parallel()

	var gotCode string
	repo := &mockTickerRepository{
		ListByExchangeFunc: func(ctx context.Context, exchangeCode string, limit, offset int) ([]entity.Ticker, error) {
			gotCode = exchangeCode
			return []entity.Ticker{{Symbol: "AAPL"}}, nil
		},
	}
	uc := usecase.NewTickerUsecase(repo)

	out, err := uc.ListTickersByExchange(context.Background(), "nasdaq", 0, 0)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "NASDAQ", gotCode, "exchange code should be uppercased before hitting the repository")
}

func TestTickerUsecase_SearchTickers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{name: "blank query rejected", query: "   ", wantErr: usecase.ErrEmptyQuery},
		{name: "valid query searches", query: "apple", wantErr: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockTickerRepository{
				SearchFunc: func(ctx context.Context, query string, limit int) ([]entity.Ticker, error) {
					assert.Equal(t, "apple", query)
					assert.Equal(t, usecase.DefaultSearchLimit, limit)
					return []entity.Ticker{{Symbol: "AAPL", Name: "Apple Inc"}}, nil
				},
			}
			uc := usecase.NewTickerUsecase(repo)

			out, err := uc.SearchTickers(context.Background(), tt.query, 0)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
			} else {
				assert.NoError(t, err)
				assert.Len(t, out, 1)
			}
		})
	}
}

func TestTickerUsecase_GetTicker(t *testing.T) {
	t.Parallel()

	repo := &mockTickerRepository{
		FindBySymbolFunc: func(ctx context.Context, symbol string) (*entity.Ticker, error) {
			if symbol != "AAPL" {
				return nil, usecase.ErrTickerNotFound
			}
			return &entity.Ticker{Symbol: "AAPL", Name: "Apple Inc"}, nil
		},
	}
	uc := usecase.NewTickerUsecase(repo)

	got, err := uc.GetTicker(context.Background(), " aapl ")
	assert.NoError(t, err)
	assert.Equal(t, "AAPL", got.Symbol, "symbol should be trimmed and uppercased before lookup")

	_, err = uc.GetTicker(context.Background(), "MISSING")
	assert.True(t, errors.Is(err, usecase.ErrTickerNotFound))
}
