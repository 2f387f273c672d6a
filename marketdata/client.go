// Package marketdata is a thin client for the third-party market-data
// provider the web application proxies: intraday candles, quotes, previous
// closes, symbol search and company news.
//
// Slow-moving endpoints (search, news) go through a daily-expiring disk
// cache; intraday endpoints always hit the provider.
package marketdata

import "net/http"

// Client talks to the market-data provider.
type Client struct {
	apiKey string
	base   string
	live   *http.Client // intraday endpoints, never cached
	daily  *http.Client // slow-moving endpoints, cached for a day
}

// DefaultBaseURL is the provider's production API root.
const DefaultBaseURL = "https://api.marketdata.example.com/v1"

// New returns a client authenticated with the given API key.
func New(apiKey string) *Client {
	return NewWithBaseURL(apiKey, DefaultBaseURL)
}

// NewWithBaseURL returns a client against an alternative API root.
// Tests point this at an httptest.Server.
func NewWithBaseURL(apiKey, base string) *Client {
	return &Client{
		apiKey: apiKey,
		base:   base,
		live:   new(http.Client),
		daily:  newDailyCachingClient(),
	}
}
