package finview

import (
	"encoding/json"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/finview/finview/timeseries"
)

// Holding is a (symbol, share count) portfolio position.
type Holding struct {
	Symbol string  `json:"symbol"`
	Shares float64 `json:"shares"`
}

// Bar is a single intraday price sample.
type Bar struct {
	Stamp timeseries.Stamp `json:"t"`
	Price float64          `json:"p"`
}

// Row is one symbol's price series re-sampled onto the axis. Axis points
// before the symbol's first observation hold NaN, encoded as JSON null.
type Row []float64

func (r Row) MarshalJSON() ([]byte, error) {
	out := make([]*float64, len(r))
	for i := range r {
		if !math.IsNaN(r[i]) {
			out[i] = &r[i]
		}
	}
	return json.Marshal(out)
}

func (r *Row) UnmarshalJSON(data []byte) error {
	var in []*float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = make(Row, len(in))
	for i, p := range in {
		if p == nil {
			(*r)[i] = math.NaN()
		} else {
			(*r)[i] = *p
		}
	}
	return nil
}

// PortfolioSeries is the portfolio-value time series produced by Align: a
// unified ascending time axis, the total market value at each axis point,
// and the per-symbol price series re-sampled onto the axis via forward-fill.
type PortfolioSeries struct {
	Axis      []timeseries.Stamp `json:"axis"`
	Totals    []float64          `json:"totals"`
	Aligned   map[string]Row     `json:"aligned,omitempty"`
	Baselines map[string]float64 `json:"baselines,omitempty"`
}

// synthesizedGap separates the two output points synthesized from a
// single-sample input, so chart consumers always get a drawable segment.
const synthesizedGap = 5 * time.Minute

// Align combines per-symbol intraday bars into one portfolio-value series.
//
// The axis is the ascending union of every observed stamp. Each symbol with
// at least one sample is re-sampled onto the axis with last-known-value
// carry-forward; axis points before a symbol's first sample are NaN. The
// total at each axis point sums shares*price over the symbols whose aligned
// price is finite there. Symbols with no samples at all never contribute.
//
// baselines (previous close per symbol, may be nil) is carried through
// untouched for day-over-day delta computation downstream.
//
// Align is deterministic and idempotent: stamp comparison is the total
// order of the fixed-width stamp strings.
func Align(holdings []Holding, bars map[string][]Bar, baselines map[string]float64) *PortfolioSeries {
	// Union of all stamps across all symbols. Lexicographic sort of the
	// zero-padded stamps is chronological.
	seen := make(map[timeseries.Stamp]struct{})
	series := make(map[string]*timeseries.Series[float64])
	for symbol, bb := range bars {
		if len(bb) == 0 {
			continue
		}
		s := new(timeseries.Series[float64])
		for _, b := range bb {
			seen[b.Stamp] = struct{}{}
			s.Append(b.Stamp, b.Price)
		}
		series[symbol] = s
	}
	axis := slices.Sorted(maps.Keys(seen))

	shares := make(map[string]float64, len(holdings))
	for _, h := range holdings {
		shares[h.Symbol] = h.Shares
	}

	aligned := make(map[string]Row, len(series))
	for symbol, s := range series {
		row := make(Row, len(axis))
		for i, at := range axis {
			if v, ok := s.ValueAsOf(at); ok {
				row[i] = v
			} else {
				row[i] = math.NaN()
			}
		}
		aligned[symbol] = row
	}

	// Sum in symbol order: float addition is not associative, so ranging the
	// map directly would make identical inputs produce different totals.
	symbols := slices.Sorted(maps.Keys(aligned))
	totals := make([]float64, len(axis))
	for i := range axis {
		var sum float64
		for _, symbol := range symbols {
			if v := aligned[symbol][i]; !math.IsNaN(v) {
				sum += shares[symbol] * v
			}
		}
		totals[i] = sum
	}

	ps := &PortfolioSeries{Axis: axis, Totals: totals, Aligned: aligned, Baselines: baselines}

	// A single data point is not drawable: synthesize a second point a few
	// minutes later with the same values.
	if len(ps.Axis) == 1 {
		ps.Axis = append(ps.Axis, ps.Axis[0].Add(synthesizedGap))
		ps.Totals = append(ps.Totals, ps.Totals[0])
		for symbol, row := range ps.Aligned {
			ps.Aligned[symbol] = append(row, row[0])
		}
	}
	return ps
}

// Value returns the aligned price of a symbol at axis index i, and whether
// the symbol had a known price there.
func (ps *PortfolioSeries) Value(symbol string, i int) (float64, bool) {
	row, ok := ps.Aligned[symbol]
	if !ok || i < 0 || i >= len(row) || math.IsNaN(row[i]) {
		return 0, false
	}
	return row[i], true
}

// DayChange returns the day-over-day change of a symbol's latest aligned
// price against its baseline (previous close), or false when either side
// is unknown.
func (ps *PortfolioSeries) DayChange(symbol string) (Percent, bool) {
	base, ok := ps.Baselines[symbol]
	if !ok || base == 0 {
		return 0, false
	}
	last, ok := ps.Value(symbol, len(ps.Axis)-1)
	if !ok {
		return 0, false
	}
	return Percent(100 * (last - base) / base), true
}
