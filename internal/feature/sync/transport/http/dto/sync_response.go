// Package dto はsyncフィーチャーのHTTPレスポンス形式を定義します。
package dto

import (
	"time"

	"finnews_backend/internal/feature/sync/domain/entity"
)

// ExchangeResult は1取引所分の同期結果を表すJSONオブジェクトです。
type ExchangeResult struct {
	Exchange string `json:"exchange"`
	Total    int    `json:"total"`
	Success  int    `json:"success"`
	Errors   int    `json:"errors"`
}

// SyncReportResponse は同期トリガーAPIのレスポンスです。
type SyncReportResponse struct {
	Status         string           `json:"status"`
	Exchanges      []ExchangeResult `json:"exchanges"`
	TotalProcessed int              `json:"total_processed"`
	TotalSuccess   int              `json:"total_success"`
	TotalErrors    int              `json:"total_errors"`
	StartedAt      time.Time        `json:"started_at"`
	CompletedAt    time.Time        `json:"completed_at"`
}

// FromReport はドメインの同期レポートをレスポンスDTOに変換します。
func FromReport(r entity.SyncReport) SyncReportResponse {
	exchanges := make([]ExchangeResult, 0, len(r.Exchanges))
	for _, ex := range r.Exchanges {
		exchanges = append(exchanges, ExchangeResult(ex))
	}
	return SyncReportResponse{
		Status:         r.Status,
		Exchanges:      exchanges,
		TotalProcessed: r.TotalProcessed,
		TotalSuccess:   r.TotalSuccess,
		TotalErrors:    r.TotalErrors,
		StartedAt:      r.StartedAt,
		CompletedAt:    r.CompletedAt,
	}
}

// SyncStatusResponse は同期状態APIのレスポンスです。
// 未実行や取得失敗の項目はnullとして返します。
type SyncStatusResponse struct {
	IsRunning        bool       `json:"is_running"`
	StartedAt        *time.Time `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	CurrentExchange  *string    `json:"current_exchange"`
	TotalProcessed   int        `json:"total_processed"`
	TotalSuccess     int        `json:"total_success"`
	TotalErrors      int        `json:"total_errors"`
	ErrorMessage     *string    `json:"error_message"`
	TotalTickersInDB *int64     `json:"total_tickers_in_db"`
}

// FromStatus はドメインの状態スナップショットをレスポンスDTOに変換します。
func FromStatus(s entity.StatusSnapshot) SyncStatusResponse {
	return SyncStatusResponse{
		IsRunning:        s.IsRunning,
		StartedAt:        s.StartedAt,
		CompletedAt:      s.CompletedAt,
		CurrentExchange:  s.CurrentExchange,
		TotalProcessed:   s.TotalProcessed,
		TotalSuccess:     s.TotalSuccess,
		TotalErrors:      s.TotalErrors,
		ErrorMessage:     s.ErrorMessage,
		TotalTickersInDB: s.TotalTickersInDB,
	}
}
