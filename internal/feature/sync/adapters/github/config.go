// Package github はGitHub上で公開されている銘柄リストリポジトリのクライアントを提供します。
package github

import (
	"os"
	"time"
)

const (
	defaultBaseURL = "https://raw.githubusercontent.com"
	defaultOwner   = "rreichel3"
	defaultRepo    = "US-Stock-Symbols"
	defaultRef     = "main"
)

// Config は銘柄リストソースの設定を保持します。
type Config struct {
	BaseURL string        // raw コンテンツのベースURL（例: "https://raw.githubusercontent.com"）
	Owner   string        // リポジトリのオーナー
	Repo    string        // リポジトリ名
	Ref     string        // ブランチまたはタグ
	Timeout time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数から銘柄リストソースの設定を読み込みます。
// 未設定の項目には公開リポジトリのデフォルト値を使用します。
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("SYMBOL_SOURCE_BASE_URL"),
		Owner:   os.Getenv("SYMBOL_SOURCE_OWNER"),
		Repo:    os.Getenv("SYMBOL_SOURCE_REPO"),
		Ref:     os.Getenv("SYMBOL_SOURCE_REF"),
		Timeout: 30 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Owner == "" {
		cfg.Owner = defaultOwner
	}
	if cfg.Repo == "" {
		cfg.Repo = defaultRepo
	}
	if cfg.Ref == "" {
		cfg.Ref = defaultRef
	}
	return cfg
}
