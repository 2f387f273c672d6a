package timeseries

import (
	"testing"
	"time"
)

func TestStampOrderIsLexicographic(t *testing.T) {
	// The whole point of the zero-padded format: string order is time order.
	a := MustParse("2026-03-02 09:05:00")
	b := MustParse("2026-03-02 10:00:00")
	if !a.Before(b) {
		t.Errorf("%q should sort before %q", a, b)
	}
	if !a.Time().Before(b.Time()) {
		t.Errorf("time order disagrees with string order for %q and %q", a, b)
	}
}

func TestStampAdd(t *testing.T) {
	a := MustParse("2026-03-02 15:58:00")
	got := a.Add(5 * time.Minute)
	want := MustParse("2026-03-02 16:03:00")
	if got != want {
		t.Errorf("Add(5m) = %q want %q", got, want)
	}
}

func TestParseRejectsBadFormat(t *testing.T) {
	if _, err := Parse("2026-3-2 9:30"); err == nil {
		t.Error("Parse should reject non zero-padded stamps")
	}
}

func TestFromUnix(t *testing.T) {
	got := FromUnix(time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC).Unix())
	want := Stamp("2026-03-02 14:30:00")
	if got != want {
		t.Errorf("FromUnix() = %q want %q", got, want)
	}
}
