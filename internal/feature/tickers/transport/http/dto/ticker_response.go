// Package dto defines data transfer objects for the tickers HTTP API.
package dto

import "finnews_backend/internal/feature/tickers/domain/entity"

// TickerItem represents one ticker in list and search responses.
// Classification fields are empty strings when unknown.
type TickerItem struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
	Country  string `json:"country"`
	IPOYear  *int   `json:"ipo_year,omitempty"`
}

// FromEntity flattens a ticker entity and its loaded associations into a TickerItem.
func FromEntity(t entity.Ticker) TickerItem {
	item := TickerItem{
		Symbol:  t.Symbol,
		Name:    t.Name,
		Country: t.Country,
		IPOYear: t.IPOYear,
	}
	if t.Exchange != nil {
		item.Exchange = t.Exchange.Code
	}
	if t.Sector != nil {
		item.Sector = t.Sector.Name
	}
	if t.Industry != nil {
		item.Industry = t.Industry.Name
	}
	return item
}
