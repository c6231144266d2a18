package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	tickersadapters "finnews_backend/internal/feature/tickers/adapters"
	"finnews_backend/internal/platform/cache"
)

// tickerCacheTTL は一覧系クエリのキャッシュ保持期間です。
// 同期は高頻度では走らないため、多少の鮮度低下は許容します。
const tickerCacheTTL = 5 * time.Minute

// NewTickerStore creates the ticker repository wrapped with Redis caching.
// When rdb is nil the decorator passes every call through to PostgreSQL.
func NewTickerStore(db *gorm.DB, rdb *redis.Client) *cache.CachingTickerRepository {
	repo := tickersadapters.NewTickerRepository(db)
	return cache.NewCachingTickerRepository(rdb, tickerCacheTTL, repo, "tickers")
}
