// Package entity defines the domain models for the sync feature.
package entity

import "time"

// SourceRecord is one raw symbol entry as published by the upstream list.
// Every field is a string exactly as it appears on the wire; price fields
// carry display formatting ("$65.86", "1,234,567", "0.259%").
type SourceRecord struct {
	Symbol    string
	Name      string
	LastSale  string
	NetChange string
	PctChange string
	MarketCap string
	Country   string
	IPOYear   string
	Volume    string
	Sector    string
	Industry  string
	URL       string
}

// Overall status values for a completed run.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
)

// ExchangeResult accumulates the per-exchange counters of one run.
type ExchangeResult struct {
	Exchange string
	Total    int
	Success  int
	Errors   int
}

// SyncReport is the structured result of one synchronization run.
// Status is StatusSuccess when no symbol failed, StatusPartial otherwise.
type SyncReport struct {
	Status         string
	Exchanges      []ExchangeResult
	TotalProcessed int
	TotalSuccess   int
	TotalErrors    int
	StartedAt      time.Time
	CompletedAt    time.Time
}

// RunSnapshot is a point-in-time view of the current or most recent run.
// Pointer fields are nil until the corresponding event has happened.
type RunSnapshot struct {
	IsRunning       bool
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CurrentExchange *string
	TotalProcessed  int
	TotalSuccess    int
	TotalErrors     int
	ErrorMessage    *string
}

// StatusSnapshot pairs the run snapshot with a live count of persisted
// tickers. TotalTickersInDB is nil when the count query failed.
type StatusSnapshot struct {
	RunSnapshot
	TotalTickersInDB *int64
}
