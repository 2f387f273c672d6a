package finview

import (
	"math"
	"slices"
	"testing"

	"github.com/finview/finview/timeseries"
)

func bar(stamp string, price float64) Bar {
	return Bar{Stamp: timeseries.MustParse(stamp), Price: price}
}

func TestAlignTwoSymbols(t *testing.T) {
	// holdings [{A,2},{B,1}]; A samples [(t1,10),(t2,11)]; B samples [(t1,20)].
	// Expected: axis [t1,t2], A aligned [10,11], B aligned [20,20] (carried
	// forward), totals [2*10+1*20, 2*11+1*20] = [40, 42].
	holdings := []Holding{{Symbol: "A", Shares: 2}, {Symbol: "B", Shares: 1}}
	bars := map[string][]Bar{
		"A": {bar("2026-03-02 09:30:00", 10), bar("2026-03-02 09:35:00", 11)},
		"B": {bar("2026-03-02 09:30:00", 20)},
	}

	ps := Align(holdings, bars, nil)

	wantAxis := []timeseries.Stamp{"2026-03-02 09:30:00", "2026-03-02 09:35:00"}
	if !slices.Equal(ps.Axis, wantAxis) {
		t.Fatalf("Axis = %v want %v", ps.Axis, wantAxis)
	}
	if !slices.Equal(ps.Aligned["A"], Row{10, 11}) {
		t.Errorf("Aligned[A] = %v want [10 11]", ps.Aligned["A"])
	}
	if !slices.Equal(ps.Aligned["B"], Row{20, 20}) {
		t.Errorf("Aligned[B] = %v want [20 20]", ps.Aligned["B"])
	}
	if !slices.Equal(ps.Totals, []float64{40, 42}) {
		t.Errorf("Totals = %v want [40 42]", ps.Totals)
	}
}

func TestAlignAxisIsUnionAscending(t *testing.T) {
	bars := map[string][]Bar{
		"A": {bar("2026-03-02 09:30:00", 1), bar("2026-03-02 09:40:00", 1)},
		"B": {bar("2026-03-02 09:35:00", 1), bar("2026-03-02 09:40:00", 1)},
	}
	ps := Align(nil, bars, nil)

	if len(ps.Axis) != 3 {
		t.Fatalf("len(axis) = %d want 3 (union of all per-symbol stamps)", len(ps.Axis))
	}
	if !slices.IsSorted(ps.Axis) {
		t.Errorf("axis not ascending: %v", ps.Axis)
	}
}

func TestAlignIdenticalStampSets(t *testing.T) {
	// When every symbol observes the same stamps, the axis is exactly that
	// common stamp set.
	stamps := []string{"2026-03-02 09:30:00", "2026-03-02 09:35:00", "2026-03-02 09:40:00"}
	bars := map[string][]Bar{}
	for _, sym := range []string{"A", "B", "C"} {
		for i, st := range stamps {
			bars[sym] = append(bars[sym], bar(st, float64(i)))
		}
	}
	ps := Align(nil, bars, nil)
	if len(ps.Axis) != len(stamps) {
		t.Fatalf("len(axis) = %d want %d", len(ps.Axis), len(stamps))
	}
	for i, st := range stamps {
		if ps.Axis[i] != timeseries.Stamp(st) {
			t.Errorf("axis[%d] = %v want %v", i, ps.Axis[i], st)
		}
	}
}

func TestAlignCarryForward(t *testing.T) {
	// A symbol with no sample at axis[i] but a sample at an earlier axis[j]
	// and none in between is valued at axis[j]'s price.
	bars := map[string][]Bar{
		"GAP": {bar("2026-03-02 09:30:00", 7), bar("2026-03-02 10:00:00", 9)},
		"TCK": {
			bar("2026-03-02 09:30:00", 1), bar("2026-03-02 09:40:00", 1),
			bar("2026-03-02 09:50:00", 1), bar("2026-03-02 10:00:00", 1),
		},
	}
	ps := Align([]Holding{{Symbol: "GAP", Shares: 1}, {Symbol: "TCK", Shares: 1}}, bars, nil)

	want := Row{7, 7, 7, 9}
	if !slices.Equal(ps.Aligned["GAP"], want) {
		t.Errorf("Aligned[GAP] = %v want %v", ps.Aligned["GAP"], want)
	}
}

func TestAlignNaNPrefix(t *testing.T) {
	// A late-starting symbol has no defined value before its first sample,
	// and must not contribute to the totals there.
	bars := map[string][]Bar{
		"EARLY": {bar("2026-03-02 09:30:00", 10), bar("2026-03-02 09:35:00", 10)},
		"LATE":  {bar("2026-03-02 09:35:00", 100)},
	}
	ps := Align([]Holding{{Symbol: "EARLY", Shares: 1}, {Symbol: "LATE", Shares: 1}}, bars, nil)

	if !math.IsNaN(ps.Aligned["LATE"][0]) {
		t.Errorf("Aligned[LATE][0] = %v want NaN", ps.Aligned["LATE"][0])
	}
	if !slices.Equal(ps.Totals, []float64{10, 110}) {
		t.Errorf("Totals = %v want [10 110]", ps.Totals)
	}
	if _, ok := ps.Value("LATE", 0); ok {
		t.Error("Value(LATE, 0) should not be defined before the first sample")
	}
}

func TestAlignEmptySymbolExcluded(t *testing.T) {
	// Symbols with zero samples are excluded entirely, at every axis point.
	bars := map[string][]Bar{
		"A":    {bar("2026-03-02 09:30:00", 10)},
		"DEAD": {},
	}
	ps := Align([]Holding{{Symbol: "A", Shares: 3}, {Symbol: "DEAD", Shares: 1000}}, bars, nil)

	if _, ok := ps.Aligned["DEAD"]; ok {
		t.Error("symbol with no samples should not appear in Aligned")
	}
	for i, total := range ps.Totals {
		if total != 30 {
			t.Errorf("Totals[%d] = %v want 30", i, total)
		}
	}
}

func TestAlignSinglePointSynthesizesSecond(t *testing.T) {
	bars := map[string][]Bar{"A": {bar("2026-03-02 15:55:00", 50)}}
	ps := Align([]Holding{{Symbol: "A", Shares: 2}}, bars, nil)

	if len(ps.Axis) != 2 {
		t.Fatalf("len(axis) = %d want 2", len(ps.Axis))
	}
	if got, want := ps.Axis[1], timeseries.Stamp("2026-03-02 16:00:00"); got != want {
		t.Errorf("axis[1] = %v want %v (5 minutes later)", got, want)
	}
	if ps.Totals[0] != ps.Totals[1] || ps.Totals[0] != 100 {
		t.Errorf("Totals = %v want [100 100]", ps.Totals)
	}
	if ps.Aligned["A"][0] != ps.Aligned["A"][1] {
		t.Errorf("Aligned[A] = %v want equal values", ps.Aligned["A"])
	}
}

func TestAlignEmptyInput(t *testing.T) {
	ps := Align(nil, nil, nil)
	if len(ps.Axis) != 0 || len(ps.Totals) != 0 {
		t.Errorf("empty input should produce an empty series, got %+v", ps)
	}
}

func TestAlignDeterministic(t *testing.T) {
	holdings := []Holding{{Symbol: "A", Shares: 2}, {Symbol: "B", Shares: 1}}
	bars := map[string][]Bar{
		"A": {bar("2026-03-02 09:30:00", 10), bar("2026-03-02 09:45:00", 11)},
		"B": {bar("2026-03-02 09:40:00", 20)},
	}
	a := Align(holdings, bars, nil)
	b := Align(holdings, bars, nil)
	if !slices.Equal(a.Axis, b.Axis) || !slices.Equal(a.Totals, b.Totals) {
		t.Errorf("Align is not deterministic: %+v vs %+v", a, b)
	}
}

func TestAlignTotalsOrderInsensitive(t *testing.T) {
	// Float addition is not associative: with magnitudes like these, summing
	// the symbols in a different order gives a different float result. The
	// totals must not depend on map iteration order.
	holdings := []Holding{{Symbol: "BIG", Shares: 1}, {Symbol: "ONE", Shares: 1}, {Symbol: "NEG", Shares: 1}}
	bars := map[string][]Bar{
		"BIG": {bar("2026-03-02 09:30:00", 1e16)},
		"ONE": {bar("2026-03-02 09:30:00", 1)},
		"NEG": {bar("2026-03-02 09:30:00", -1e16)},
	}

	first := Align(holdings, bars, nil)
	for run := 0; run < 100; run++ {
		got := Align(holdings, bars, nil)
		if !slices.Equal(got.Totals, first.Totals) {
			t.Fatalf("run %d: Totals = %v, first run gave %v", run, got.Totals, first.Totals)
		}
	}
	// Symbol order is BIG, NEG, ONE: (1e16 - 1e16) + 1 = 1.
	if first.Totals[0] != 1 {
		t.Errorf("Totals[0] = %v want 1", first.Totals[0])
	}
}

func TestDayChange(t *testing.T) {
	bars := map[string][]Bar{"A": {bar("2026-03-02 09:30:00", 11), bar("2026-03-02 09:35:00", 11)}}
	ps := Align([]Holding{{Symbol: "A", Shares: 1}}, bars, map[string]float64{"A": 10})

	change, ok := ps.DayChange("A")
	if !ok {
		t.Fatal("DayChange(A) should be defined")
	}
	if !change.Equal(Percent(10)) {
		t.Errorf("DayChange(A) = %v want 10%%", change)
	}

	if _, ok := ps.DayChange("B"); ok {
		t.Error("DayChange(B) should be undefined without a baseline")
	}
}
