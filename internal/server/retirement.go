package server

import (
	"net/http"
	"strconv"

	"github.com/finview/finview"
	"github.com/labstack/echo/v4"
)

// handleRetirement projects a plan given entirely by query parameters; the
// projection is pure computation, nothing is stored.
func (s *Server) handleRetirement(c echo.Context) error {
	currency := c.QueryParam("currency")
	if currency == "" {
		currency = "USD"
	}

	var bad []string
	num := func(name string, fallback float64) float64 {
		v := c.QueryParam(name)
		if v == "" {
			return fallback
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			bad = append(bad, name)
			return fallback
		}
		return f
	}

	plan := finview.RetirementPlan{
		CurrentAge:         int(num("currentAge", 30)),
		RetireAge:          int(num("retireAge", 65)),
		Balance:            finview.M(num("balance", 0), currency),
		AnnualContribution: finview.M(num("contribution", 0), currency),
		AnnualReturn:       finview.Percent(num("return", 6)),
		Inflation:          finview.Percent(num("inflation", 2)),
		WithdrawalRate:     finview.Percent(num("withdrawal", 4)),
	}
	if len(bad) > 0 {
		return httpError(c, http.StatusBadRequest, "not a number: "+bad[0])
	}

	proj, err := plan.Project()
	if err != nil {
		return httpError(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, proj)
}
