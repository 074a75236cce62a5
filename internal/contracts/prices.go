package contracts

import "time"

// PricePoint is one daily bar for a ticker. Series are ordered ascending
// by date per ticker. Only Close is required; the engine uses the series
// solely to derive momentum when pre-computed returns are absent.
type PricePoint struct {
	Ticker string
	Date   time.Time
	Close  float64
	Open   *float64
	High   *float64
	Low    *float64
	Volume *int64
}

// PriceSeries groups ascending-by-date price points per ticker
type PriceSeries map[string][]PricePoint
