package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finnews_backend/internal/feature/tickers/domain/entity"
	"finnews_backend/internal/feature/tickers/usecase"
)

// setupTestDB prepares an in-memory SQLite database with the ticker schema
// and the seeded exchange catalog.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(
		&entity.Exchange{},
		&entity.Sector{},
		&entity.Industry{},
		&entity.Ticker{},
		&entity.TickerPrice{},
	)
	require.NoError(t, err, "failed to migrate tables")

	exchanges := []entity.Exchange{
		{Code: "NASDAQ", Name: "NASDAQ Stock Market"},
		{Code: "NYSE", Name: "New York Stock Exchange"},
		{Code: "AMEX", Name: "NYSE American"},
	}
	require.NoError(t, db.Create(&exchanges).Error, "failed to seed exchanges")

	return db
}

func float64Ptr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64       { return &v }
func intPtr(v int) *int             { return &v }

func appleUpsert() entity.TickerUpsert {
	return entity.TickerUpsert{
		Symbol:   "AAPL",
		Name:     "Apple Inc",
		Exchange: "NASDAQ",
		Sector:   "Technology",
		Industry: "Consumer Electronics",
		Country:  "United States",
		IPOYear:  intPtr(1980),
		Price: &entity.PriceQuote{
			LastSale:  float64Ptr(185.50),
			NetChange: float64Ptr(1.25),
			PctChange: float64Ptr(0.68),
			Volume:    int64Ptr(52000000),
			MarketCap: float64Ptr(2900000000000),
		},
	}
}

func TestNewTickerRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewTickerRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestTickerPostgres_Upsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        entity.TickerUpsert
		wantErr      error
		setupFunc    func(t *testing.T, repo *tickerPostgres)
		validateFunc func(t *testing.T, db *gorm.DB)
	}{
		{
			name:  "success: creates ticker with classifications and price",
			input: appleUpsert(),
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var ticker entity.Ticker
				require.NoError(t, db.Preload("Exchange").Preload("Sector").Preload("Industry").
					Where("symbol = ?", "AAPL").First(&ticker).Error)
				assert.Equal(t, "Apple Inc", ticker.Name)
				assert.Equal(t, "NASDAQ", ticker.Exchange.Code)
				assert.Equal(t, "Technology", ticker.Sector.Name)
				assert.Equal(t, "Consumer Electronics", ticker.Industry.Name)
				require.NotNil(t, ticker.IPOYear)
				assert.Equal(t, 1980, *ticker.IPOYear)

				var prices int64
				db.Model(&entity.TickerPrice{}).Where("ticker_id = ?", ticker.ID).Count(&prices)
				assert.Equal(t, int64(1), prices, "one price snapshot should be appended")
			},
		},
		{
			name: "success: creates ticker without classification or price",
			input: entity.TickerUpsert{
				Symbol:   "XYZ",
				Name:     "Unclassified Corp",
				Exchange: "NYSE",
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var ticker entity.Ticker
				require.NoError(t, db.Where("symbol = ?", "XYZ").First(&ticker).Error)
				assert.Nil(t, ticker.SectorID, "sector reference should stay null")
				assert.Nil(t, ticker.IndustryID, "industry reference should stay null")

				var prices int64
				db.Model(&entity.TickerPrice{}).Count(&prices)
				assert.Equal(t, int64(0), prices, "no price snapshot without price data")
			},
		},
		{
			name: "success: resync updates existing ticker in place",
			input: entity.TickerUpsert{
				Symbol:   "AAPL",
				Name:     "Apple Incorporated",
				Exchange: "NYSE",
				Sector:   "Technology",
			},
			setupFunc: func(t *testing.T, repo *tickerPostgres) {
				require.NoError(t, repo.Upsert(context.Background(), appleUpsert()))
			},
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&entity.Ticker{}).Count(&count)
				assert.Equal(t, int64(1), count, "resync must not create a second row")

				var ticker entity.Ticker
				require.NoError(t, db.Preload("Exchange").Where("symbol = ?", "AAPL").First(&ticker).Error)
				assert.Equal(t, "Apple Incorporated", ticker.Name, "name should be updated in place")
				assert.Equal(t, "NYSE", ticker.Exchange.Code, "exchange reference is overwritten on resync")
				assert.Nil(t, ticker.IndustryID, "absent industry clears the reference")
			},
		},
		{
			name:    "failure: unknown exchange code",
			input:   entity.TickerUpsert{Symbol: "ZZZ", Name: "Nowhere Inc", Exchange: "LSE"},
			wantErr: usecase.ErrUnknownExchange,
			validateFunc: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&entity.Ticker{}).Count(&count)
				assert.Equal(t, int64(0), count, "failed upsert must not persist anything")
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewTickerRepository(db)

			if tt.setupFunc != nil {
				tt.setupFunc(t, repo)
			}

			err := repo.Upsert(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, db)
			}
		})
	}
}

func TestTickerPostgres_Upsert_Idempotent(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewTickerRepository(db)
	in := appleUpsert()

	require.NoError(t, repo.Upsert(context.Background(), in))

	var first entity.Ticker
	require.NoError(t, db.Where("symbol = ?", "AAPL").First(&first).Error)

	// updated_at resolution guard
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, repo.Upsert(context.Background(), in))

	var count int64
	db.Model(&entity.Ticker{}).Count(&count)
	assert.Equal(t, int64(1), count, "ticker row count must not grow on identical resync")

	var sectors, industries int64
	db.Model(&entity.Sector{}).Count(&sectors)
	db.Model(&entity.Industry{}).Count(&industries)
	assert.Equal(t, int64(1), sectors, "sector must be reused, not duplicated")
	assert.Equal(t, int64(1), industries, "industry must be reused, not duplicated")

	var second entity.Ticker
	require.NoError(t, db.Where("symbol = ?", "AAPL").First(&second).Error)
	assert.Equal(t, first.Name, second.Name)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt), "updated_at should advance on resync")

	var prices int64
	db.Model(&entity.TickerPrice{}).Count(&prices)
	assert.Equal(t, int64(2), prices, "each sync pass appends its own price snapshot")
}

func TestTickerPostgres_Upsert_SharedSector(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewTickerRepository(db)

	a := appleUpsert()
	b := entity.TickerUpsert{
		Symbol:   "MSFT",
		Name:     "Microsoft Corporation",
		Exchange: "NASDAQ",
		Sector:   "Technology",
		Industry: "Software",
	}

	require.NoError(t, repo.Upsert(context.Background(), a))
	require.NoError(t, repo.Upsert(context.Background(), b))

	var sectors int64
	db.Model(&entity.Sector{}).Count(&sectors)
	assert.Equal(t, int64(1), sectors, "both tickers should share one sector row")

	var industries int64
	db.Model(&entity.Industry{}).Count(&industries)
	assert.Equal(t, int64(2), industries)
}

func TestTickerPostgres_Reads(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, repo *tickerPostgres) {
		t.Helper()
		require.NoError(t, repo.Upsert(context.Background(), appleUpsert()))
		require.NoError(t, repo.Upsert(context.Background(), entity.TickerUpsert{
			Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ", Sector: "Technology",
		}))
		require.NoError(t, repo.Upsert(context.Background(), entity.TickerUpsert{
			Symbol: "GE", Name: "General Electric", Exchange: "NYSE", Sector: "Industrials",
		}))
	}

	t.Run("List returns tickers ordered by symbol", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		repo := NewTickerRepository(db)
		seed(t, repo)

		rows, err := repo.List(context.Background(), 10, 0)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "AAPL", rows[0].Symbol)
		assert.Equal(t, "GE", rows[1].Symbol)
		assert.Equal(t, "MSFT", rows[2].Symbol)
		require.NotNil(t, rows[0].Exchange, "exchange association should be loaded")
	})

	t.Run("List respects limit and offset", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		repo := NewTickerRepository(db)
		seed(t, repo)

		rows, err := repo.List(context.Background(), 1, 1)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "GE", rows[0].Symbol)
	})

	t.Run("ListByExchange filters by exchange code", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		repo := NewTickerRepository(db)
		seed(t, repo)

		rows, err := repo.ListByExchange(context.Background(), "NYSE", 10, 0)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "GE", rows[0].Symbol)
	})

	t.Run("Search matches symbol and name case-insensitively", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		repo := NewTickerRepository(db)
		seed(t, repo)

		bySymbol, err := repo.Search(context.Background(), "aap", 10)
		require.NoError(t, err)
		require.Len(t, bySymbol, 1)
		assert.Equal(t, "AAPL", bySymbol[0].Symbol)

		byName, err := repo.Search(context.Background(), "electric", 10)
		require.NoError(t, err)
		require.Len(t, byName, 1)
		assert.Equal(t, "GE", byName[0].Symbol)
	})

	t.Run("FindBySymbol returns not-found sentinel", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		repo := NewTickerRepository(db)
		seed(t, repo)

		got, err := repo.FindBySymbol(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, "Apple Inc", got.Name)

		_, err = repo.FindBySymbol(context.Background(), "NOPE")
		assert.ErrorIs(t, err, usecase.ErrTickerNotFound)
	})

	t.Run("Count reflects persisted tickers", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		repo := NewTickerRepository(db)

		count, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		seed(t, repo)

		count, err = repo.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}
