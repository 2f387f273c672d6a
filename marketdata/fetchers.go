package marketdata

import (
	"fmt"
	"net/url"
	"time"

	"github.com/finview/finview"
	"github.com/finview/finview/timeseries"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the provider's API endpoints.

// Candles fetches the intraday bars of a symbol between from and to
// (inclusive), at the given resolution in minutes. Bars come back ascending,
// ready for alignment.
func (c *Client) Candles(symbol string, resolution int, from, to time.Time) ([]finview.Bar, error) {
	// {base}/stock/candle?symbol=AAPL&resolution=5&from=...&to=...
	// {
	//   "s": "ok",
	//   "t": [1709391000, 1709391300],
	//   "c": [188.23, 188.51]
	// }
	// "s" is "no_data" when the market has not opened yet.
	addr := fmt.Sprintf("%s/stock/candle?symbol=%s&resolution=%d&from=%d&to=%d&token=%s",
		c.base, url.QueryEscape(symbol), resolution, from.Unix(), to.Unix(), c.apiKey)

	var content struct {
		Status string    `json:"s"`
		Stamps []int64   `json:"t"`
		Closes []float64 `json:"c"`
	}
	if err := jwget(c.live, addr, &content); err != nil {
		return nil, err
	}
	if content.Status == "no_data" {
		return nil, nil
	}
	if content.Status != "ok" {
		return nil, fmt.Errorf("candle request for %q failed: status %q", symbol, content.Status)
	}
	if len(content.Stamps) != len(content.Closes) {
		return nil, fmt.Errorf("candle request for %q returned %d stamps for %d closes", symbol, len(content.Stamps), len(content.Closes))
	}

	bars := make([]finview.Bar, 0, len(content.Stamps))
	for i, sec := range content.Stamps {
		bars = append(bars, finview.Bar{Stamp: timeseries.FromUnix(sec), Price: content.Closes[i]})
	}
	return bars, nil
}

// Quote is a real-time snapshot of a symbol.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Current       decimal.Decimal `json:"current"`
	PreviousClose decimal.Decimal `json:"previousClose"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
}

// GetQuote fetches the real-time quote of a symbol.
func (c *Client) GetQuote(symbol string) (*Quote, error) {
	// {base}/quote?symbol=AAPL
	// { "c": 188.51, "pc": 187.20, "h": 189.00, "l": 186.95 }
	addr := fmt.Sprintf("%s/quote?symbol=%s&token=%s", c.base, url.QueryEscape(symbol), c.apiKey)

	var content struct {
		Current       decimal.Decimal `json:"c"`
		PreviousClose decimal.Decimal `json:"pc"`
		High          decimal.Decimal `json:"h"`
		Low           decimal.Decimal `json:"l"`
	}
	if err := jwget(c.live, addr, &content); err != nil {
		return nil, err
	}
	return &Quote{
		Symbol:        symbol,
		Current:       content.Current,
		PreviousClose: content.PreviousClose,
		High:          content.High,
		Low:           content.Low,
	}, nil
}

// PreviousClose fetches the previous session's close of a symbol, the
// baseline for day-over-day deltas.
func (c *Client) PreviousClose(symbol string) (float64, error) {
	q, err := c.GetQuote(symbol)
	if err != nil {
		return 0, fmt.Errorf("could not fetch baseline for %q: %w", symbol, err)
	}
	return q.PreviousClose.InexactFloat64(), nil
}

// SearchResult is one symbol matching a search query.
type SearchResult struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Search looks up symbols matching a free-text query.
func (c *Client) Search(query string) ([]SearchResult, error) {
	// {base}/search?q=apple
	// { "result": [ {"symbol": "AAPL", "description": "APPLE INC", "type": "Common Stock"} ] }
	addr := fmt.Sprintf("%s/search?q=%s&token=%s", c.base, url.QueryEscape(query), c.apiKey)

	var content struct {
		Result []SearchResult `json:"result"`
	}
	// query that endpoint at most once a day
	if err := jwget(c.daily, addr, &content); err != nil {
		return nil, err
	}
	return content.Result, nil
}

// Headline is one company-news item from the provider.
type Headline struct {
	Title     string `json:"headline"`
	Summary   string `json:"summary"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Timestamp int64  `json:"datetime"`
}

// CompanyNews fetches recent news headlines for a symbol within a day range.
func (c *Client) CompanyNews(symbol string, from, to time.Time) ([]Headline, error) {
	// {base}/company-news?symbol=AAPL&from=2026-08-01&to=2026-08-30
	addr := fmt.Sprintf("%s/company-news?symbol=%s&from=%s&to=%s&token=%s",
		c.base, url.QueryEscape(symbol), from.Format("2006-01-02"), to.Format("2006-01-02"), c.apiKey)

	content := make([]Headline, 0)
	if err := jwget(c.daily, addr, &content); err != nil {
		return nil, err
	}
	return content, nil
}
