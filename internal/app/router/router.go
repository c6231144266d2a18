// Package router はアプリケーションのHTTPルーティングを構成します。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "finnews_backend/internal/feature/auth/transport/handler"
	synchandler "finnews_backend/internal/feature/sync/transport/handler"
	tickershandler "finnews_backend/internal/feature/tickers/transport/handler"
	"finnews_backend/internal/platform/http/handler"
	jwtmw "finnews_backend/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, tickers *tickershandler.TickerHandler,
	sync *synchandler.SyncHandler) *gin.Engine {
	r := gin.Default()

	// ブラウザのフロントエンドから呼び出すためCORSを許可
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.GET("/health", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	api := r.Group("/api")
	{
		// 固定パスはパラメータルートより先に登録する
		api.GET("/tickers", tickers.List)
		api.GET("/tickers/search", tickers.Search)
		api.GET("/tickers/symbol/:symbol", tickers.GetBySymbol)
		api.GET("/tickers/sync/status", sync.Status)
		api.GET("/tickers/:exchange", tickers.ListByExchange)

		// 認証必須のルート
		// jwtmw.AuthRequired() ミドルウェアを適用
		// → リクエストヘッダーに JWT が必要になる
		auth := api.Group("/")
		auth.Use(jwtmw.AuthRequired())
		{
			auth.POST("/tickers/sync", sync.Trigger)
		}
	}

	return r
}
