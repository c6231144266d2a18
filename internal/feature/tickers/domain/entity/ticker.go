// Package entity defines the domain models for the tickers feature.
package entity

import "time"

// Exchange represents a stock market venue (NASDAQ, NYSE, AMEX).
// Rows are reference data seeded at startup and never deleted.
type Exchange struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"size:10;not null;uniqueIndex"`
	Name string `gorm:"size:100;not null"`
}

// Sector is a lazily created classification bucket, unique by name.
type Sector struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

// Industry is a lazily created classification bucket, unique by name.
// The sector reference is nullable because the upstream data may carry an
// industry without a sector.
type Industry struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:255;not null;uniqueIndex"`
	SectorID *uint
	Sector   *Sector
}

// Ticker represents a tradable symbol and its descriptive metadata.
// Symbol is the business key and is unique across all exchanges.
type Ticker struct {
	ID         uint   `gorm:"primaryKey"`
	Symbol     string `gorm:"size:20;not null;uniqueIndex"`
	Name       string `gorm:"size:255;not null"`
	ExchangeID *uint
	Exchange   *Exchange
	IndustryID *uint
	Industry   *Industry
	SectorID   *uint
	Sector     *Sector
	Country    string    `gorm:"size:100"`
	IPOYear    *int      `gorm:"column:ipo_year"`
	SourceURL  string    `gorm:"column:source_url;size:512"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TickerPrice is one point-in-time price snapshot for a ticker.
// Rows are append-only; history is kept across syncs.
type TickerPrice struct {
	ID         uint    `gorm:"primaryKey"`
	TickerID   uint    `gorm:"not null;index"`
	Ticker     *Ticker `gorm:"constraint:OnDelete:CASCADE"`
	LastSale   *float64
	NetChange  *float64
	PctChange  *float64
	Volume     *int64
	MarketCap  *float64
	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// PriceQuote carries parsed price fields for one sync pass.
// Nil fields were absent or unparsable upstream.
type PriceQuote struct {
	LastSale  *float64
	NetChange *float64
	PctChange *float64
	Volume    *int64
	MarketCap *float64
}

// TickerUpsert is one normalized symbol record ready for persistence.
// Sector and Industry are resolved by name at write time; empty strings mean
// the classification is unknown.
type TickerUpsert struct {
	Symbol    string
	Name      string
	Exchange  string
	Sector    string
	Industry  string
	Country   string
	IPOYear   *int
	SourceURL string
	Price     *PriceQuote
}
