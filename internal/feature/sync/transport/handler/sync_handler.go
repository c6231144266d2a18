// Package handler はsyncフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finnews_backend/internal/feature/sync/domain/entity"
	"finnews_backend/internal/feature/sync/transport/http/dto"
	"finnews_backend/internal/feature/sync/usecase"
)

// SyncUsecase は同期操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SyncUsecase interface {
	Sync(ctx context.Context, exchangeCodes []string) (*entity.SyncReport, error)
	Status(ctx context.Context) entity.StatusSnapshot
}

// SyncHandler はティッカー同期のHTTPリクエストを処理します。
type SyncHandler struct {
	uc SyncUsecase
}

// NewSyncHandler は指定されたusecaseでSyncHandlerの新しいインスタンスを生成します。
func NewSyncHandler(uc SyncUsecase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Trigger は同期を開始し、完了後にレポートを返すAPIです。
// exchangeクエリパラメータ未指定時は全取引所を対象とします。
//
// エンドポイント例:
// POST /api/tickers/sync
// POST /api/tickers/sync?exchange=NASDAQ
func (h *SyncHandler) Trigger(c *gin.Context) {
	var codes []string
	if raw := strings.TrimSpace(c.Query("exchange")); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
	}

	report, err := h.uc.Sync(c.Request.Context(), codes)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSyncAlreadyRunning):
			c.JSON(http.StatusConflict, gin.H{"error": "a sync is already running"})
		case errors.Is(err, usecase.ErrUnknownExchange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromReport(*report))
}

// Status は現在または直近の同期の進行状況を返すAPIです。
//
// エンドポイント例:
// GET /api/tickers/sync/status
func (h *SyncHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromStatus(h.uc.Status(c.Request.Context())))
}
