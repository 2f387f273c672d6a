package server

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/finview/finview/internal/store"
	"github.com/finview/finview/summarize"
	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"
)

func (s *Server) handleListNews(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			return httpError(c, http.StatusBadRequest, "limit must be between 1 and 200")
		}
		limit = n
	}
	aa, err := s.store.Articles(strings.ToUpper(c.QueryParam("symbol")), limit)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list news")
	}
	return c.JSON(http.StatusOK, aa)
}

func articleID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func (s *Server) handleHighlight(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return httpError(c, http.StatusBadRequest, "invalid article id")
	}
	var req struct {
		Quote string `json:"quote"`
	}
	if err := c.Bind(&req); err != nil {
		return httpError(c, http.StatusBadRequest, "invalid payload")
	}
	h, err := s.store.HighlightArticle(currentUser(c).ID, id, req.Quote)
	if err != nil {
		return httpError(c, http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, h)
}

func (s *Server) handleListHighlights(c echo.Context) error {
	hh, err := s.store.Highlights(currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list highlights")
	}
	return c.JSON(http.StatusOK, hh)
}

func (s *Server) handleRepost(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return httpError(c, http.StatusBadRequest, "invalid article id")
	}
	var req struct {
		Note string `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return httpError(c, http.StatusBadRequest, "invalid payload")
	}
	r, err := s.store.RepostArticle(currentUser(c).ID, id, req.Note)
	if err != nil {
		return httpError(c, http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, r)
}

func (s *Server) handleFeed(c echo.Context) error {
	feed, err := s.store.Feed(currentUser(c).ID, 50)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not build feed")
	}
	return c.JSON(http.StatusOK, feed)
}

// summarizeBatchSize caps how many recent articles one digest covers.
const summarizeBatchSize = 10

func (s *Server) handleSummarize(c echo.Context) error {
	if s.summarizer == nil {
		return httpError(c, http.StatusServiceUnavailable, "summarization is not configured")
	}
	rows, err := s.store.Articles(strings.ToUpper(c.QueryParam("symbol")), summarizeBatchSize)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not load articles")
	}
	if len(rows) == 0 {
		return httpError(c, http.StatusNotFound, "no articles to summarize")
	}

	articles := make([]summarize.Article, 0, len(rows))
	for _, a := range rows {
		articles = append(articles, summarize.Article{Title: a.Title, Source: a.SourceName, Content: a.Content})
	}
	markdown, err := s.summarizer.Summarize(c.Request().Context(), articles)
	if err != nil {
		return httpError(c, http.StatusBadGateway, "summarization failed")
	}

	sum, err := s.store.SaveSummary(markdown, s.cfg.GeminiModel, len(articles))
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not save summary")
	}
	return s.renderSummary(c, sum)
}

func (s *Server) handleLatestSummary(c echo.Context) error {
	sum, err := s.store.LatestSummary()
	if err != nil {
		return httpError(c, http.StatusNotFound, "no summary yet")
	}
	return s.renderSummary(c, sum)
}

// renderSummary returns the digest as JSON, or as HTML when the client asks
// for ?format=html.
func (s *Server) renderSummary(c echo.Context, sum *store.NewsSummary) error {
	if c.QueryParam("format") != "html" {
		return c.JSON(http.StatusOK, sum)
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(sum.Markdown), &buf); err != nil {
		return httpError(c, http.StatusInternalServerError, "could not render summary")
	}
	return c.HTML(http.StatusOK, buf.String())
}

// fetchNewsWindow is how far back a provider news pull reaches.
const fetchNewsWindow = 7 * 24 * time.Hour

// handleFetchNews pulls the provider's recent headlines for a symbol into
// the article store. Already-ingested headlines dedup on their URL.
func (s *Server) handleFetchNews(c echo.Context) error {
	if s.market == nil {
		return httpError(c, http.StatusServiceUnavailable, "market data is not configured")
	}
	symbol := strings.ToUpper(c.Param("symbol"))
	now := time.Now()
	headlines, err := s.market.CompanyNews(symbol, now.Add(-fetchNewsWindow), now)
	if err != nil {
		return httpError(c, http.StatusBadGateway, "news unavailable for "+symbol)
	}

	saved := make([]store.NewsArticle, 0, len(headlines))
	for _, h := range headlines {
		if h.URL == "" {
			continue
		}
		a, err := s.store.SaveArticle(&store.NewsArticle{
			Title:       h.Title,
			Content:     h.Summary,
			SourceName:  h.Source,
			SourceURL:   h.URL,
			Symbol:      symbol,
			PublishedAt: time.Unix(h.Timestamp, 0),
		})
		if err != nil {
			return httpError(c, http.StatusInternalServerError, "could not save article")
		}
		saved = append(saved, *a)
	}
	return c.JSON(http.StatusOK, saved)
}

// inboundEmail is the JSON shape the mail provider posts on arrival.
type inboundEmail struct {
	MessageID string `json:"message_id"`
	From      string `json:"from"`
	Subject   string `json:"subject"`
	Text      string `json:"text"`
	Symbol    string `json:"symbol"` // optional tag extracted by the mail rule
}

// handleInboundEmail ingests a newsletter mail as an article. The synthetic
// source URL keyed on the message id makes redelivery idempotent. When a
// hook token is configured, the provider must echo it in X-Hook-Token.
func (s *Server) handleInboundEmail(c echo.Context) error {
	if s.cfg.HookToken != "" && c.Request().Header.Get("X-Hook-Token") != s.cfg.HookToken {
		return httpError(c, http.StatusUnauthorized, "invalid hook token")
	}
	var mail inboundEmail
	if err := c.Bind(&mail); err != nil {
		return httpError(c, http.StatusBadRequest, "invalid payload")
	}
	if mail.Subject == "" || mail.Text == "" {
		return httpError(c, http.StatusBadRequest, "subject and text are required")
	}
	if mail.MessageID == "" {
		mail.MessageID = fmt.Sprintf("%x", sha1.Sum([]byte(mail.From+mail.Subject+mail.Text)))
	}

	source := mail.From
	if i := strings.LastIndex(source, "@"); i >= 0 {
		source = source[i+1:]
	}
	a, err := s.store.SaveArticle(&store.NewsArticle{
		Title:       mail.Subject,
		Content:     mail.Text,
		SourceName:  source,
		SourceURL:   "message://" + mail.MessageID,
		Symbol:      strings.ToUpper(mail.Symbol),
		PublishedAt: time.Now(),
	})
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not ingest mail")
	}
	return c.JSON(http.StatusCreated, a)
}
