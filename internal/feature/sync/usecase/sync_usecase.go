package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"finnews_backend/internal/feature/sync/domain/entity"
	tickersentity "finnews_backend/internal/feature/tickers/domain/entity"
	"finnews_backend/internal/shared/ratelimiter"
)

// exchangeSource ties an exchange code to its upstream symbol-list file.
type exchangeSource struct {
	Code string
	File string
}

// exchangeCatalog fixes the set of synchronized exchanges and the processing
// order of a full run.
var exchangeCatalog = []exchangeSource{
	{Code: "NASDAQ", File: "nasdaq/nasdaq_full_tickers.json"},
	{Code: "NYSE", File: "nyse/nyse_full_tickers.json"},
	{Code: "AMEX", File: "amex/amex_full_tickers.json"},
}

// SymbolSource fetches the raw symbol list behind one catalog file.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolSource interface {
	// FetchSymbols materializes the full record list for the given file.
	FetchSymbols(ctx context.Context, file string) ([]entity.SourceRecord, error)
}

// TickerRepository is the write surface of the persisted ticker store plus
// the aggregate count used by status polling.
type TickerRepository interface {
	Upsert(ctx context.Context, in tickersentity.TickerUpsert) error
	Count(ctx context.Context) (int64, error)
}

// SyncUsecase orchestrates synchronization runs. It owns the RunState; all
// other components only read snapshots of it.
type SyncUsecase struct {
	source      SymbolSource
	tickers     TickerRepository
	state       *RunState
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewSyncUsecase は新しい SyncUsecase を作成します。
func NewSyncUsecase(source SymbolSource, tickers TickerRepository, state *RunState, rateLimiter ratelimiter.RateLimiterInterface) *SyncUsecase {
	return &SyncUsecase{source: source, tickers: tickers, state: state, rateLimiter: rateLimiter}
}

// Sync runs one synchronization pass over the requested exchange codes, or
// over the whole catalog when codes is empty. It is synchronous: the report
// describes a finished run. A second concurrent call fails with
// ErrSyncAlreadyRunning and leaves the active run untouched.
func (u *SyncUsecase) Sync(ctx context.Context, exchangeCodes []string) (*entity.SyncReport, error) {
	targets, err := resolveTargets(exchangeCodes)
	if err != nil {
		return nil, err
	}

	if !u.state.TryStart() {
		return nil, ErrSyncAlreadyRunning
	}

	// Engine-level failure before any exchange processing begins.
	if err := ctx.Err(); err != nil {
		msg := fmt.Sprintf("sync aborted before processing: %v", err)
		u.state.Fail(msg)
		return nil, fmt.Errorf("sync aborted before processing: %w", err)
	}

	slog.Info("ticker sync started", "exchanges", codesOf(targets))

	results := make([]entity.ExchangeResult, 0, len(targets))
	for _, target := range targets {
		results = append(results, u.syncExchange(ctx, target))
	}
	u.state.Complete()

	report := buildReport(results, u.state.Snapshot())
	slog.Info("ticker sync finished",
		"status", report.Status,
		"processed", report.TotalProcessed,
		"success", report.TotalSuccess,
		"errors", report.TotalErrors,
	)
	return report, nil
}

// syncExchange fetches and imports the symbol list of one exchange. Fetch
// failures count as a single exchange-level error; per-symbol failures are
// absorbed into the counters and never abort the pass.
func (u *SyncUsecase) syncExchange(ctx context.Context, target exchangeSource) entity.ExchangeResult {
	u.state.SetCurrentExchange(target.Code)
	u.rateLimiter.WaitIfNeeded()

	records, err := u.source.FetchSymbols(ctx, target.File)
	if err != nil {
		slog.Error("symbol list fetch failed", "exchange", target.Code, "error", err)
		u.state.RecordExchangeFailure(fmt.Sprintf("%s: %v", target.Code, err))
		return entity.ExchangeResult{Exchange: target.Code, Errors: 1}
	}

	result := entity.ExchangeResult{Exchange: target.Code, Total: len(records)}
	for _, rec := range records {
		if err := u.syncSymbol(ctx, rec, target.Code); err != nil {
			slog.Warn("symbol import failed", "exchange", target.Code, "symbol", rec.Symbol, "error", err)
			result.Errors++
			u.state.RecordResult(false, err.Error())
			continue
		}
		result.Success++
		u.state.RecordResult(true, "")
	}
	return result
}

// syncSymbol maps and persists one record as a single logical unit.
func (u *SyncUsecase) syncSymbol(ctx context.Context, rec entity.SourceRecord, exchangeCode string) error {
	up, err := mapRecord(rec, exchangeCode)
	if err != nil {
		return err
	}
	return u.tickers.Upsert(ctx, up)
}

// Status returns a snapshot of the current or last run plus a live ticker
// count. A failing count query degrades to a nil count instead of failing
// the whole status read.
func (u *SyncUsecase) Status(ctx context.Context) entity.StatusSnapshot {
	snap := entity.StatusSnapshot{RunSnapshot: u.state.Snapshot()}

	count, err := u.tickers.Count(ctx)
	if err != nil {
		slog.Warn("ticker count query failed", "error", err)
		return snap
	}
	snap.TotalTickersInDB = &count
	return snap
}

// resolveTargets validates the requested codes against the catalog, keeping
// catalog order. An empty request selects the whole catalog.
func resolveTargets(exchangeCodes []string) ([]exchangeSource, error) {
	if len(exchangeCodes) == 0 {
		return exchangeCatalog, nil
	}

	requested := make(map[string]bool, len(exchangeCodes))
	for _, code := range exchangeCodes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if !inCatalog(code) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownExchange, code)
		}
		requested[code] = true
	}

	targets := make([]exchangeSource, 0, len(requested))
	for _, src := range exchangeCatalog {
		if requested[src.Code] {
			targets = append(targets, src)
		}
	}
	return targets, nil
}

func inCatalog(code string) bool {
	for _, src := range exchangeCatalog {
		if src.Code == code {
			return true
		}
	}
	return false
}

func codesOf(targets []exchangeSource) []string {
	codes := make([]string, 0, len(targets))
	for _, t := range targets {
		codes = append(codes, t.Code)
	}
	return codes
}

func buildReport(results []entity.ExchangeResult, snap entity.RunSnapshot) *entity.SyncReport {
	report := &entity.SyncReport{
		Status:         entity.StatusSuccess,
		Exchanges:      results,
		TotalProcessed: snap.TotalProcessed,
		TotalSuccess:   snap.TotalSuccess,
		TotalErrors:    snap.TotalErrors,
	}
	if snap.TotalErrors > 0 {
		report.Status = entity.StatusPartial
	}
	if snap.StartedAt != nil {
		report.StartedAt = *snap.StartedAt
	}
	if snap.CompletedAt != nil {
		report.CompletedAt = *snap.CompletedAt
	}
	return report
}
