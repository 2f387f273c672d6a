package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// handleAddPosition records a discount position taken from a valuation
// document. Documents arrive pre-parsed: the client sends the extracted
// fields, not the document itself.
func (s *Server) handleAddPosition(c echo.Context) error {
	var req struct {
		Symbol  string    `json:"symbol"`
		Price   float64   `json:"price"`
		Target  float64   `json:"target"`
		DocRef  string    `json:"docRef"`
		NotedAt time.Time `json:"notedAt"`
	}
	if err := c.Bind(&req); err != nil || req.Symbol == "" {
		return httpError(c, http.StatusBadRequest, "symbol, price and target are required")
	}
	p, err := s.store.AddPosition(currentUser(c).ID, req.Symbol, req.Price, req.Target, req.DocRef, req.NotedAt)
	if err != nil {
		return httpError(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleListPositions(c echo.Context) error {
	pp, err := s.store.Positions(currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list positions")
	}
	return c.JSON(http.StatusOK, pp)
}

// handleLatestPositions is the dashboard view: the newest snapshot per symbol.
func (s *Server) handleLatestPositions(c echo.Context) error {
	pp, err := s.store.LatestPositions(currentUser(c).ID)
	if err != nil {
		return httpError(c, http.StatusInternalServerError, "could not list positions")
	}
	return c.JSON(http.StatusOK, pp)
}
