package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"finnews_backend/internal/feature/sync/adapters/github/dto"
	"finnews_backend/internal/feature/sync/domain/entity"
	"finnews_backend/internal/feature/sync/usecase"
)

// SymbolClient はGitHubのrawコンテンツから取引所別の銘柄リストを取得する
// SymbolSource実装です。
type SymbolClient struct {
	cfg    Config
	client *http.Client
}

// SymbolClientがSymbolSourceを実装していることをコンパイル時に検証します。
var _ usecase.SymbolSource = (*SymbolClient)(nil)

// NewSymbolClient は指定された設定とHTTPクライアントでSymbolClientの新しいインスタンスを生成します。
func NewSymbolClient(cfg Config, client *http.Client) *SymbolClient {
	return &SymbolClient{cfg: cfg, client: client}
}

// FetchSymbols はリポジトリ内の指定ファイル（例: "nasdaq/nasdaq_full_tickers.json"）を
// 取得し、生の銘柄レコードのスライスとして返します。
func (c *SymbolClient) FetchSymbols(ctx context.Context, file string) ([]entity.SourceRecord, error) {
	u := fmt.Sprintf("%s/%s/%s/%s/%s", c.cfg.BaseURL, c.cfg.Owner, c.cfg.Repo, c.cfg.Ref, file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrSourceUnavailable, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrSourceUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http %d for %s", usecase.ErrSourceUnavailable, res.StatusCode, file)
	}

	var entries []dto.SymbolEntry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", usecase.ErrMalformedResponse, file, err)
	}

	records := make([]entity.SourceRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, entity.SourceRecord{
			Symbol:    e.Symbol,
			Name:      e.Name,
			LastSale:  e.LastSale,
			NetChange: e.NetChange,
			PctChange: e.PctChange,
			MarketCap: e.MarketCap,
			Country:   e.Country,
			IPOYear:   e.IPOYear,
			Volume:    e.Volume,
			Sector:    e.Sector,
			Industry:  e.Industry,
			URL:       e.URL,
		})
	}
	return records, nil
}
