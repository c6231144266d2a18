// Package db はGORMによるデータベース接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "finnews_backend/internal/feature/auth/domain/entity"
	tickersentity "finnews_backend/internal/feature/tickers/domain/entity"
)

// Config はデータベース接続の設定を保持します。
type Config struct {
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQL Unixソケット接続用（例: "project:region:instance"）
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		SSLMode:      os.Getenv("DB_SSLMODE"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// BuildDSN はPostgreSQL接続用のDSN文字列を生成します。
// InstanceNameが設定されている場合はCloud SQLのUnixソケット接続を優先します。
func BuildDSN(cfg Config) string {
	host := cfg.Host
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
}

// Opener はDSNからgorm.DBを開く関数型です。テストで差し替え可能にします。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は指定された期限まで3秒間隔で接続を試行します。
// コンテナ起動直後などDBの準備が整っていない場合に備えます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

func gormOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// OpenDB は環境変数の設定でPostgreSQLに接続し、必要に応じてマイグレーションを実行します。
func OpenDB() *gorm.DB {
	dsn := BuildDSN(LoadConfigFromEnv())

	db, err := ConnectWithRetry(dsn, 60*time.Second, gormOpener)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&tickersentity.Exchange{},
			&tickersentity.Sector{},
			&tickersentity.Industry{},
			&tickersentity.Ticker{},
			&tickersentity.TickerPrice{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
		if err := SeedExchanges(db); err != nil {
			log.Fatalf("failed to seed exchanges: %v", err)
		}
	}

	return db
}

// SeedExchanges は対応取引所のマスタレコードを投入します。既存レコードは変更しません。
func SeedExchanges(db *gorm.DB) error {
	exchanges := []tickersentity.Exchange{
		{Code: "NASDAQ", Name: "Nasdaq Stock Market"},
		{Code: "NYSE", Name: "New York Stock Exchange"},
		{Code: "AMEX", Name: "NYSE American"},
	}
	for _, ex := range exchanges {
		if err := db.Where(tickersentity.Exchange{Code: ex.Code}).FirstOrCreate(&ex).Error; err != nil {
			return fmt.Errorf("seed exchange %s: %w", ex.Code, err)
		}
	}
	return nil
}
