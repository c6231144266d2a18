// Package di provides dependency injection factories for creating application components.
package di

import (
	"finnews_backend/internal/feature/sync/adapters/github"
	infrahttp "finnews_backend/internal/platform/http"
)

// NewSymbolSource creates a fully configured GitHub symbol list client with HTTP client.
func NewSymbolSource() *github.SymbolClient {
	cfg := github.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return github.NewSymbolClient(cfg, httpClient)
}
