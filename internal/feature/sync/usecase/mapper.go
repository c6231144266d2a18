package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"finnews_backend/internal/feature/sync/domain/entity"
	tickersentity "finnews_backend/internal/feature/tickers/domain/entity"
)

// mapRecord converts one raw source record into a persistable upsert for the
// given exchange. Symbol and name are required; a record missing either fails
// with ErrMalformedResponse so the run can count it and continue. Price
// fields are parsed best-effort: an unparsable value becomes nil rather than
// failing the record.
func mapRecord(rec entity.SourceRecord, exchangeCode string) (tickersentity.TickerUpsert, error) {
	symbol := strings.ToUpper(strings.TrimSpace(rec.Symbol))
	if symbol == "" {
		return tickersentity.TickerUpsert{}, fmt.Errorf("%w: record is missing a symbol", ErrMalformedResponse)
	}
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return tickersentity.TickerUpsert{}, fmt.Errorf("%w: record %s is missing a company name", ErrMalformedResponse, symbol)
	}

	up := tickersentity.TickerUpsert{
		Symbol:    symbol,
		Name:      name,
		Exchange:  exchangeCode,
		Sector:    strings.TrimSpace(rec.Sector),
		Industry:  strings.TrimSpace(rec.Industry),
		Country:   strings.TrimSpace(rec.Country),
		IPOYear:   parseYear(rec.IPOYear),
		SourceURL: strings.TrimSpace(rec.URL),
	}

	if strings.TrimSpace(rec.LastSale) != "" {
		up.Price = &tickersentity.PriceQuote{
			LastSale:  parsePrice(rec.LastSale),
			NetChange: parseDecimal(rec.NetChange),
			PctChange: parsePercent(rec.PctChange),
			Volume:    parseInt64(rec.Volume),
			MarketCap: parseDecimal(rec.MarketCap),
		}
	}
	return up, nil
}

// parsePrice strips currency formatting ("$65.86" -> 65.86).
func parsePrice(s string) *float64 {
	return parseDecimal(strings.ReplaceAll(s, "$", ""))
}

// parsePercent strips the percent sign ("0.259%" -> 0.259).
func parsePercent(s string) *float64 {
	return parseDecimal(strings.ReplaceAll(s, "%", ""))
}

// parseDecimal parses a decimal string with thousands separators.
func parseDecimal(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt64(s string) *int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseYear(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
