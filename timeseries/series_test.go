package timeseries

import "testing"

func TestAppend(t *testing.T) {
	s := new(Series[string])
	t1, v1 := MustParse("2026-03-02 10:00:00"), "ten"
	t2, v2 := MustParse("2026-03-02 09:30:00"), "nine thirty"

	// Test is about appending two values in reverse order and checking that
	// everything is as expected at every step of the way.

	if s.Len() != 0 {
		t.Errorf("Series.Len() = %v want 0", s.Len())
	}

	s.Append(t1, v1)
	if s.Len() != 1 {
		t.Errorf("Append(t1, v1).Len() = %v want 1", s.Len())
	}

	s.Append(t2, v2)
	if s.Len() != 2 {
		t.Errorf("Append(t2, v2).Len() = %v want 2", s.Len())
	}

	if s.stamps[1] != t1 {
		t.Errorf("series[1].stamp = %v want %v", s.stamps[1], t1)
	}
	if s.stamps[0] != t2 {
		t.Errorf("series[0].stamp = %v want %v", s.stamps[0], t2)
	}
	if s.values[1] != v1 {
		t.Errorf("series[1].value = %v want %v", s.values[1], v1)
	}
	if s.values[0] != v2 {
		t.Errorf("series[0].value = %v want %v", s.values[0], v2)
	}
}

func TestAppendOverwrites(t *testing.T) {
	s := new(Series[float64])
	at := MustParse("2026-03-02 09:30:00")

	s.Append(at, 10).Append(at, 11)
	if s.Len() != 1 {
		t.Fatalf("Len() = %v want 1", s.Len())
	}
	if v, _ := s.Get(at); v != 11 {
		t.Errorf("Get(at) = %v want 11 (last data wins)", v)
	}
}

func TestValueAsOf(t *testing.T) {
	s := new(Series[float64])
	t1 := MustParse("2026-03-02 09:30:00")
	t2 := MustParse("2026-03-02 09:35:00")
	t3 := MustParse("2026-03-02 09:40:00")
	s.Append(t1, 10).Append(t3, 12)

	tests := []struct {
		name  string
		at    Stamp
		want  float64
		found bool
	}{
		{"before first sample", MustParse("2026-03-02 09:00:00"), 0, false},
		{"exact match first", t1, 10, true},
		{"gap carries forward", t2, 10, true},
		{"exact match last", t3, 12, true},
		{"after last carries forward", MustParse("2026-03-02 16:00:00"), 12, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := s.ValueAsOf(tc.at)
			if found != tc.found {
				t.Fatalf("ValueAsOf(%s) found = %v want %v", tc.at, found, tc.found)
			}
			if found && got != tc.want {
				t.Errorf("ValueAsOf(%s) = %v want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestValuesOrder(t *testing.T) {
	s := new(Series[float64])
	s.Append(MustParse("2026-03-02 10:00:00"), 2)
	s.Append(MustParse("2026-03-02 09:30:00"), 1)
	s.Append(MustParse("2026-03-02 15:55:00"), 3)

	var prev Stamp
	for at := range s.Values() {
		if prev != "" && !prev.Before(at) {
			t.Fatalf("iteration out of order: %s then %s", prev, at)
		}
		prev = at
	}
}
