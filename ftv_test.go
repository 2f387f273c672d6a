package finview

import (
	"slices"
	"testing"
)

type fakePosition struct {
	Symbol string
	Target float64
}

func TestLatestBySymbol(t *testing.T) {
	// Rows arrive newest first; only the first per symbol survives.
	rows := []fakePosition{
		{"AAPL", 210},
		{"MSFT", 480},
		{"AAPL", 200}, // stale
		{"NVDA", 150},
		{"MSFT", 470}, // stale
	}

	latest := LatestBySymbol(rows, func(p fakePosition) string { return p.Symbol })

	want := []fakePosition{{"AAPL", 210}, {"MSFT", 480}, {"NVDA", 150}}
	if !slices.Equal(latest, want) {
		t.Errorf("LatestBySymbol() = %v want %v", latest, want)
	}
}

func TestLatestBySymbolEmpty(t *testing.T) {
	latest := LatestBySymbol(nil, func(p fakePosition) string { return p.Symbol })
	if len(latest) != 0 {
		t.Errorf("LatestBySymbol(nil) = %v want empty", latest)
	}
}

func TestDiscountOf(t *testing.T) {
	tests := []struct {
		name          string
		price, target float64
		want          Percent
		wantErr       bool
	}{
		{"quarter below target", 150, 200, 25, false},
		{"at target", 200, 200, 0, false},
		{"premium", 220, 200, -10, false},
		{"zero target", 100, 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DiscountOf(tc.price, tc.target)
			if (err != nil) != tc.wantErr {
				t.Fatalf("DiscountOf(%v, %v) error = %v, wantErr %v", tc.price, tc.target, err, tc.wantErr)
			}
			if err == nil && !got.Equal(tc.want) {
				t.Errorf("DiscountOf(%v, %v) = %v want %v", tc.price, tc.target, got, tc.want)
			}
		})
	}
}
