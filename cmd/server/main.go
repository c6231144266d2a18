package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"finnews_backend/internal/app/di"
	"finnews_backend/internal/app/router"
	authadapters "finnews_backend/internal/feature/auth/adapters"
	authhandler "finnews_backend/internal/feature/auth/transport/handler"
	authusecase "finnews_backend/internal/feature/auth/usecase"
	synchandler "finnews_backend/internal/feature/sync/transport/handler"
	syncusecase "finnews_backend/internal/feature/sync/usecase"
	tickershandler "finnews_backend/internal/feature/tickers/transport/handler"
	tickersusecase "finnews_backend/internal/feature/tickers/usecase"
	infradb "finnews_backend/internal/platform/db"
	jwtmw "finnews_backend/internal/platform/jwt"
	infraredis "finnews_backend/internal/platform/redis"
	"finnews_backend/internal/shared/ratelimiter"
)

func main() {
	// .envがあれば読み込む（本番はコンテナの環境変数を使用）
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not loaded:", err)
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	tickerStore := di.NewTickerStore(db, rdb)
	symbolSource := di.NewSymbolSource()

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	tickersUC := tickersusecase.NewTickerUsecase(tickerStore)
	// 取引所リストの取得元に負荷をかけないよう、1分あたり6リクエストまでに抑える
	limiter := ratelimiter.NewRateLimiter(6, time.Minute)
	syncUC := syncusecase.NewSyncUsecase(symbolSource, tickerStore, syncusecase.NewRunState(), limiter)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	tickersH := tickershandler.NewTickerHandler(tickersUC)
	syncH := synchandler.NewSyncHandler(syncUC)

	// ルータ生成
	router := router.NewRouter(authH, tickersH, syncH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
