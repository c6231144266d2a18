// Package handler はtickersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"finnews_backend/internal/feature/tickers/domain/entity"
	"finnews_backend/internal/feature/tickers/transport/http/dto"
	"finnews_backend/internal/feature/tickers/usecase"
)

// TickerUsecase はティッカー読み取り操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TickerUsecase interface {
	ListTickers(ctx context.Context, limit, offset int) ([]entity.Ticker, error)
	ListTickersByExchange(ctx context.Context, exchangeCode string, limit, offset int) ([]entity.Ticker, error)
	SearchTickers(ctx context.Context, query string, limit int) ([]entity.Ticker, error)
	GetTicker(ctx context.Context, symbol string) (*entity.Ticker, error)
}

// TickerHandler はティッカーデータのHTTPリクエストを処理します。
type TickerHandler struct {
	uc TickerUsecase
}

// NewTickerHandler は指定されたusecaseでTickerHandlerの新しいインスタンスを生成します。
func NewTickerHandler(uc TickerUsecase) *TickerHandler {
	return &TickerHandler{uc: uc}
}

// List はすべてのティッカーの一覧を取得するAPIです。
//
// エンドポイント例:
// GET /api/tickers?limit=100&offset=0
func (h *TickerHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	tickers, err := h.uc.ListTickers(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItems(tickers))
}

// ListByExchange は指定された取引所のティッカー一覧を取得するAPIです。
//
// エンドポイント例:
// GET /api/tickers/NASDAQ?limit=10000&offset=0
func (h *TickerHandler) ListByExchange(c *gin.Context) {
	limit, offset := pagination(c)

	tickers, err := h.uc.ListTickersByExchange(c.Request.Context(), c.Param("exchange"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItems(tickers))
}

// Search はシンボルまたは名称でティッカーを検索するAPIです。
//
// エンドポイント例:
// GET /api/tickers/search?q=apple&limit=50
func (h *TickerHandler) Search(c *gin.Context) {
	limit, _ := pagination(c)

	tickers, err := h.uc.SearchTickers(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItems(tickers))
}

// GetBySymbol は単一のティッカーをシンボルで取得するAPIです。
//
// エンドポイント例:
// GET /api/tickers/symbol/AAPL
func (h *TickerHandler) GetBySymbol(c *gin.Context) {
	ticker, err := h.uc.GetTicker(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		if errors.Is(err, usecase.ErrTickerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticker not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*ticker))
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

func toItems(tickers []entity.Ticker) []dto.TickerItem {
	out := make([]dto.TickerItem, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, dto.FromEntity(t))
	}
	return out
}
