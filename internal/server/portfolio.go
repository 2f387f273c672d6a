package server

import (
	"log"
	"net/http"
	"time"

	"github.com/finview/finview"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleListHoldings(c echo.Context) error {
	hh, err := s.store.Holdings(currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list holdings")
	}
	return c.JSON(http.StatusOK, hh)
}

func (s *Server) handleUpsertHolding(c echo.Context) error {
	var req struct {
		Symbol string  `json:"symbol"`
		Shares float64 `json:"shares"`
	}
	if err := c.Bind(&req); err != nil || req.Symbol == "" {
		return httpError(c, http.StatusBadRequest, "symbol and shares are required")
	}
	h, err := s.store.UpsertHolding(currentUser(c).ID, req.Symbol, req.Shares)
	if err != nil {
		return httpError(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h)
}

func (s *Server) handleDeleteHolding(c echo.Context) error {
	if err := s.store.DeleteHolding(currentUser(c).ID, c.Param("symbol")); err != nil {
		return httpError(c, http.StatusInternalServerError, "could not delete holding")
	}
	return c.NoContent(http.StatusNoContent)
}

// intradayResolution is the bar width requested from the provider, in minutes.
const intradayResolution = 5

// handleIntraday fans out one candle fetch and one baseline fetch per held
// symbol, fire-and-collect, then runs a single alignment pass. A failed
// symbol is an empty series, never a failed request.
func (s *Server) handleIntraday(c echo.Context) error {
	if s.market == nil {
		return httpError(c, http.StatusServiceUnavailable, "market data is not configured")
	}
	user := currentUser(c)
	holdings, err := s.store.DomainHoldings(user.ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not load holdings")
	}
	if len(holdings) == 0 {
		return c.JSON(http.StatusOK, finview.Align(nil, nil, nil))
	}

	now := time.Now()
	sessionStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type result struct {
		symbol   string
		bars     []finview.Bar
		baseline float64
		hasBase  bool
	}
	results := make(chan result, len(holdings))
	for _, h := range holdings {
		go func(symbol string) {
			r := result{symbol: symbol}
			bars, err := s.market.Candles(symbol, intradayResolution, sessionStart, now)
			if err != nil {
				// Best effort: the symbol simply has no data today.
				log.Printf("intraday fetch failed for %s (ignored): %v", symbol, err)
			} else {
				r.bars = bars
			}
			if base, err := s.market.PreviousClose(symbol); err == nil {
				r.baseline, r.hasBase = base, true
			}
			results <- r
		}(h.Symbol)
	}

	bars := make(map[string][]finview.Bar, len(holdings))
	baselines := make(map[string]float64)
	for range holdings {
		r := <-results
		bars[r.symbol] = r.bars
		if r.hasBase {
			baselines[r.symbol] = r.baseline
		}
	}

	return c.JSON(http.StatusOK, finview.Align(holdings, bars, baselines))
}

func (s *Server) handleWatchlist(c echo.Context) error {
	ww, err := s.store.Watchlist(currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list watchlist")
	}
	return c.JSON(http.StatusOK, ww)
}

func (s *Server) handleAddWatch(c echo.Context) error {
	var req struct {
		Symbol string `json:"symbol"`
	}
	if err := c.Bind(&req); err != nil || req.Symbol == "" {
		return httpError(c, http.StatusBadRequest, "symbol is required")
	}
	w, err := s.store.AddWatch(currentUser(c).ID, req.Symbol)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not add to watchlist")
	}
	return c.JSON(http.StatusOK, w)
}

func (s *Server) handleRemoveWatch(c echo.Context) error {
	if err := s.store.RemoveWatch(currentUser(c).ID, c.Param("symbol")); err != nil {
		return httpError(c, http.StatusInternalServerError, "could not remove from watchlist")
	}
	return c.NoContent(http.StatusNoContent)
}

// handleQuote proxies the provider quote, falling back to the spark payload
// when the quote endpoint has nothing.
func (s *Server) handleQuote(c echo.Context) error {
	if s.market == nil {
		return httpError(c, http.StatusServiceUnavailable, "market data is not configured")
	}
	symbol := c.Param("symbol")
	q, err := s.market.GetQuote(symbol)
	if err == nil {
		return c.JSON(http.StatusOK, q)
	}
	log.Printf("quote failed for %s, trying spark: %v", symbol, err)
	price, err := s.market.LastSparkPrice(symbol)
	if err != nil {
		return httpError(c, http.StatusBadGateway, "quote unavailable for "+symbol)
	}
	return c.JSON(http.StatusOK, map[string]any{"symbol": symbol, "current": price})
}

func (s *Server) handleSearch(c echo.Context) error {
	if s.market == nil {
		return httpError(c, http.StatusServiceUnavailable, "market data is not configured")
	}
	query := c.QueryParam("q")
	if query == "" {
		return httpError(c, http.StatusBadRequest, "q is required")
	}
	res, err := s.market.Search(query)
	if err != nil {
		return httpError(c, http.StatusBadGateway, "search unavailable")
	}
	return c.JSON(http.StatusOK, res)
}
