// Package adapters はtickersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"finnews_backend/internal/feature/tickers/domain/entity"
	"finnews_backend/internal/feature/tickers/usecase"
)

// tickerPostgres はTickerRepositoryインターフェースのGORM実装です。
type tickerPostgres struct {
	db *gorm.DB
}

var _ usecase.TickerRepository = (*tickerPostgres)(nil)

// NewTickerRepository は指定されたDB接続でtickerPostgresリポジトリの新しいインスタンスを生成します。
func NewTickerRepository(db *gorm.DB) *tickerPostgres {
	return &tickerPostgres{db: db}
}

// Upsert はシンボルをキーにティッカーを作成または更新します。
// セクターと業種は名前で検索し、存在しなければ作成します。価格データがあれば
// スナップショット行を1件追記します。ティッカー更新と価格追記は同一トランザクションで実行します。
func (r *tickerPostgres) Upsert(ctx context.Context, in entity.TickerUpsert) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ex entity.Exchange
		if err := tx.Where("code = ?", strings.ToUpper(in.Exchange)).First(&ex).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", usecase.ErrUnknownExchange, in.Exchange)
			}
			return err
		}

		sectorID, err := findOrCreateSector(tx, in.Sector)
		if err != nil {
			return err
		}
		industryID, err := findOrCreateIndustry(tx, in.Industry, sectorID)
		if err != nil {
			return err
		}

		var t entity.Ticker
		err = tx.Where("symbol = ?", in.Symbol).First(&t).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			t = entity.Ticker{
				Symbol:     in.Symbol,
				Name:       in.Name,
				ExchangeID: &ex.ID,
				IndustryID: industryID,
				SectorID:   sectorID,
				Country:    in.Country,
				IPOYear:    in.IPOYear,
				SourceURL:  in.SourceURL,
			}
			if err := tx.Create(&t).Error; err != nil {
				return classifyWriteError(err)
			}
		case err != nil:
			return err
		default:
			// 既存行は可変フィールドのみ更新。updated_atはGORMが自動更新する。
			updates := map[string]any{
				"name":        in.Name,
				"exchange_id": ex.ID,
				"industry_id": industryID,
				"sector_id":   sectorID,
				"country":     in.Country,
				"ipo_year":    in.IPOYear,
				"source_url":  in.SourceURL,
			}
			if err := tx.Model(&t).Updates(updates).Error; err != nil {
				return classifyWriteError(err)
			}
		}

		if in.Price != nil {
			p := entity.TickerPrice{
				TickerID:  t.ID,
				LastSale:  in.Price.LastSale,
				NetChange: in.Price.NetChange,
				PctChange: in.Price.PctChange,
				Volume:    in.Price.Volume,
				MarketCap: in.Price.MarketCap,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// findOrCreateSector は名前の完全一致でセクターを取得し、なければ作成してIDを返します。
// 名前が空の場合はnilを返します。
func findOrCreateSector(tx *gorm.DB, name string) (*uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var s entity.Sector
	if err := tx.Where(entity.Sector{Name: name}).FirstOrCreate(&s).Error; err != nil {
		return nil, err
	}
	return &s.ID, nil
}

// findOrCreateIndustry は名前の完全一致で業種を取得し、なければ作成してIDを返します。
func findOrCreateIndustry(tx *gorm.DB, name string, sectorID *uint) (*uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var i entity.Industry
	if err := tx.Where(entity.Industry{Name: name}).
		Attrs(entity.Industry{SectorID: sectorID}).
		FirstOrCreate(&i).Error; err != nil {
		return nil, err
	}
	return &i.ID, nil
}

// classifyWriteError はストレージ層の一意制約違反をusecaseの番兵エラーへ変換します。
func classifyWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
		return fmt.Errorf("%w: %v", usecase.ErrDuplicateSymbol, err)
	}
	return err
}

// List はシンボル順にティッカーを返します。
func (r *tickerPostgres) List(ctx context.Context, limit, offset int) ([]entity.Ticker, error) {
	var rows []entity.Ticker
	if err := r.withAssociations(ctx).
		Order("symbol ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByExchange は指定された取引所コードに属するティッカーをシンボル順に返します。
func (r *tickerPostgres) ListByExchange(ctx context.Context, exchangeCode string, limit, offset int) ([]entity.Ticker, error) {
	var rows []entity.Ticker
	if err := r.withAssociations(ctx).
		Joins("JOIN exchanges ON exchanges.id = tickers.exchange_id").
		Where("exchanges.code = ?", strings.ToUpper(exchangeCode)).
		Order("symbol ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Search はシンボルまたは名称に部分一致するティッカーを返します（大文字小文字を区別しない）。
func (r *tickerPostgres) Search(ctx context.Context, query string, limit int) ([]entity.Ticker, error) {
	pattern := "%" + strings.ToUpper(query) + "%"
	var rows []entity.Ticker
	if err := r.withAssociations(ctx).
		Where("UPPER(symbol) LIKE ? OR UPPER(name) LIKE ?", pattern, pattern).
		Order("symbol ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindBySymbol はシンボルでティッカーを取得します。
// 存在しない場合、usecase.ErrTickerNotFoundを返します。
func (r *tickerPostgres) FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error) {
	var t entity.Ticker
	if err := r.withAssociations(ctx).Where("symbol = ?", symbol).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTickerNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Count は永続化されているティッカーの総数を返します。
func (r *tickerPostgres) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Ticker{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *tickerPostgres) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Exchange").
		Preload("Sector").
		Preload("Industry")
}
