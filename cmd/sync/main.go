package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"finnews_backend/internal/app/di"
	syncusecase "finnews_backend/internal/feature/sync/usecase"
	infradb "finnews_backend/internal/platform/db"
	"finnews_backend/internal/shared/ratelimiter"
)

// 全取引所の銘柄リストを1回だけ同期するバッチコマンドです。
// cronやCloud Schedulerからの定期実行を想定しています。
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not loaded:", err)
	}

	db := infradb.OpenDB()
	tickerStore := di.NewTickerStore(db, nil)
	symbolSource := di.NewSymbolSource()

	limiter := ratelimiter.NewRateLimiter(6, time.Minute)
	uc := syncusecase.NewSyncUsecase(symbolSource, tickerStore, syncusecase.NewRunState(), limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	report, err := uc.Sync(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("sync %s: processed=%d success=%d errors=%d",
		report.Status, report.TotalProcessed, report.TotalSuccess, report.TotalErrors)
}
