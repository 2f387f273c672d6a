// Package server exposes the finview REST API: session-authenticated routes
// over the store, plus thin proxies to the market-data provider and the LLM
// summarizer.
package server

import (
	"context"
	"time"

	"net/http"

	"github.com/finview/finview"
	"github.com/finview/finview/internal/config"
	"github.com/finview/finview/internal/store"
	"github.com/finview/finview/marketdata"
	"github.com/finview/finview/summarize"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// MarketData is the slice of the provider client the handlers consume.
// Tests substitute a stub.
type MarketData interface {
	Candles(symbol string, resolution int, from, to time.Time) ([]finview.Bar, error)
	GetQuote(symbol string) (*marketdata.Quote, error)
	PreviousClose(symbol string) (float64, error)
	Search(query string) ([]marketdata.SearchResult, error)
	CompanyNews(symbol string, from, to time.Time) ([]marketdata.Headline, error)
	LastSparkPrice(symbol string) (float64, error)
}

// Summarizer condenses articles to a markdown digest.
type Summarizer interface {
	Summarize(ctx context.Context, articles []summarize.Article) (string, error)
}

// Mailer delivers family invite mails. A nil Mailer disables delivery;
// the invite link is still returned by the API.
type Mailer interface {
	SendInvite(to, familyName, link string) error
}

// Server holds the wired application.
type Server struct {
	cfg        *config.Config
	store      *store.Store
	market     MarketData
	summarizer Summarizer
	mailer     Mailer
	limiter    *RateLimiter
	echo       *echo.Echo
}

// New wires the routes. market, summarizer, mailer and limiter may be nil;
// the corresponding routes then degrade (503 for proxies, no mail delivery,
// no rate limiting).
func New(cfg *config.Config, st *store.Store, market MarketData, summarizer Summarizer, mailer Mailer, limiter *RateLimiter) *Server {
	s := &Server{
		cfg:        cfg,
		store:      st,
		market:     market,
		summarizer: summarizer,
		mailer:     mailer,
		limiter:    limiter,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// Public routes.
	e.POST("/api/register", s.handleRegister)
	e.POST("/api/login", s.handleLogin)
	e.POST("/hooks/inbound-email", s.handleInboundEmail)

	// Authenticated routes.
	api := e.Group("/api", s.requireSession)
	api.POST("/logout", s.handleLogout)
	api.GET("/me", s.handleMe)

	api.GET("/holdings", s.handleListHoldings)
	api.POST("/holdings", s.handleUpsertHolding)
	api.DELETE("/holdings/:symbol", s.handleDeleteHolding)
	api.GET("/portfolio/intraday", s.handleIntraday)

	api.GET("/watchlist", s.handleWatchlist)
	api.POST("/watchlist", s.handleAddWatch)
	api.DELETE("/watchlist/:symbol", s.handleRemoveWatch)

	proxied := api.Group("", s.rateLimited)
	proxied.GET("/quote/:symbol", s.handleQuote)
	proxied.GET("/search", s.handleSearch)
	proxied.POST("/news/fetch/:symbol", s.handleFetchNews)

	api.GET("/news", s.handleListNews)
	api.POST("/news/:id/highlight", s.handleHighlight)
	api.GET("/news/highlights", s.handleListHighlights)
	api.POST("/news/:id/repost", s.handleRepost)
	api.GET("/feed", s.handleFeed)
	api.POST("/news/summarize", s.handleSummarize, s.rateLimited)
	api.GET("/news/summary", s.handleLatestSummary)

	api.POST("/ftv", s.handleAddPosition)
	api.GET("/ftv", s.handleListPositions)
	api.GET("/ftv/latest", s.handleLatestPositions)

	api.POST("/follow/:id", s.handleFollow)
	api.DELETE("/follow/:id", s.handleUnfollow)
	api.GET("/following", s.handleFollowing)
	api.GET("/followers", s.handleFollowers)
	api.POST("/overseers/:id", s.handleCreateOverseer)
	api.GET("/overseers/wards", s.handleWards)
	api.GET("/overseers/wards/:id/holdings", s.handleWardHoldings)

	api.POST("/families", s.handleCreateFamily)
	api.GET("/families", s.handleListFamilies)
	api.GET("/families/:id/members", s.handleFamilyMembers)
	api.POST("/families/:id/invites", s.handleInvite)
	api.POST("/invites/accept", s.handleAcceptInvite)

	api.GET("/retirement", s.handleRetirement)

	s.echo = e
	return s
}

// Router exposes the underlying echo instance, mainly for tests.
func (s *Server) Router() *echo.Echo { return s.echo }

// Start serves until the listener fails.
func (s *Server) Start() error { return s.echo.Start(s.cfg.ListenAddr) }

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error { return s.echo.Shutdown(ctx) }

// httpError is the uniform error payload.
func httpError(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// rateLimited applies the redis fixed-window limiter when one is configured.
func (s *Server) rateLimited(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.limiter == nil {
			return next(c)
		}
		key := c.RealIP()
		if u, ok := c.Get(userKey).(*store.User); ok {
			key = u.Email
		}
		ok, err := s.limiter.Allow(c.Request().Context(), c.Path()+":"+key)
		if err != nil {
			// A broken limiter never blocks the request.
			return next(c)
		}
		if !ok {
			return httpError(c, http.StatusTooManyRequests, "rate limit exceeded, slow down")
		}
		return next(c)
	}
}
