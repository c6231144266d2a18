// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	syncusecase "finnews_backend/internal/feature/sync/usecase"
	"finnews_backend/internal/feature/tickers/domain/entity"
	tickersusecase "finnews_backend/internal/feature/tickers/usecase"
)

// TickerStore は装飾対象のリポジトリが備えるべき操作をまとめたインターフェースです。
type TickerStore interface {
	Upsert(ctx context.Context, in entity.TickerUpsert) error
	List(ctx context.Context, limit, offset int) ([]entity.Ticker, error)
	ListByExchange(ctx context.Context, exchangeCode string, limit, offset int) ([]entity.Ticker, error)
	Search(ctx context.Context, query string, limit int) ([]entity.Ticker, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error)
	Count(ctx context.Context) (int64, error)
}

// CachingTickerRepository decorates a ticker repository with Redis caching.
// List results are cached with a TTL; every Upsert invalidates the whole
// namespace because a single symbol can appear in many cached pages.
// Count and FindBySymbol always pass through so sync status stays live.
type CachingTickerRepository struct {
	inner     TickerStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// 読み取り側と同期側の両リポジトリインターフェースを実装していることをコンパイル時に検証します。
var (
	_ tickersusecase.TickerRepository = (*CachingTickerRepository)(nil)
	_ syncusecase.TickerRepository    = (*CachingTickerRepository)(nil)
)

// NewCachingTickerRepository decorates a ticker repository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tickers".
func NewCachingTickerRepository(rdb *redis.Client, ttl time.Duration, inner TickerStore, namespace string) *CachingTickerRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tickers"
	}
	return &CachingTickerRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Upsert writes through to the underlying repository and invalidates cached pages.
func (c *CachingTickerRepository) Upsert(ctx context.Context, in entity.TickerUpsert) error {
	if err := c.inner.Upsert(ctx, in); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: don't fail the upsert if cache invalidation fails
	_ = c.deleteByPattern(ctx, c.namespace+":*")
	return nil
}

// List retrieves a ticker page, checking cache first then falling back to the database.
func (c *CachingTickerRepository) List(ctx context.Context, limit, offset int) ([]entity.Ticker, error) {
	key := fmt.Sprintf("%s:list:%d:%d", c.namespace, limit, offset)
	return c.cachedList(ctx, key, func() ([]entity.Ticker, error) {
		return c.inner.List(ctx, limit, offset)
	})
}

// ListByExchange retrieves a per-exchange page, checking cache first.
func (c *CachingTickerRepository) ListByExchange(ctx context.Context, exchangeCode string, limit, offset int) ([]entity.Ticker, error) {
	key := fmt.Sprintf("%s:exchange:%s:%d:%d", c.namespace, safe(exchangeCode), limit, offset)
	return c.cachedList(ctx, key, func() ([]entity.Ticker, error) {
		return c.inner.ListByExchange(ctx, exchangeCode, limit, offset)
	})
}

// Search retrieves matching tickers, checking cache first.
func (c *CachingTickerRepository) Search(ctx context.Context, query string, limit int) ([]entity.Ticker, error) {
	key := fmt.Sprintf("%s:search:%s:%d", c.namespace, safe(query), limit)
	return c.cachedList(ctx, key, func() ([]entity.Ticker, error) {
		return c.inner.Search(ctx, query, limit)
	})
}

// FindBySymbol always passes through to the underlying repository.
func (c *CachingTickerRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Ticker, error) {
	return c.inner.FindBySymbol(ctx, symbol)
}

// Count always passes through so the sync status reports a live number.
func (c *CachingTickerRepository) Count(ctx context.Context) (int64, error) {
	return c.inner.Count(ctx)
}

// cachedList は一覧系クエリのキャッシュ共通処理です。
func (c *CachingTickerRepository) cachedList(ctx context.Context, key string, load func() ([]entity.Ticker, error)) ([]entity.Ticker, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Ticker
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTickerRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
