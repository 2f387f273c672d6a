package timeseries

import (
	"encoding/json"
	"fmt"
	"time"
)

// StampFormat is the fixed-width, zero-padded format used to represent
// intraday instants as strings. Because every field is zero-padded,
// lexicographic order on stamps is chronological order.
const StampFormat = "2006-01-02 15:04:05"

// Stamp represents an intraday instant with second granularity.
//
// It is deliberately a string: stamps travel through JSON payloads and
// chart consumers untouched, and all the ordering the package needs is
// the string's own total order.
type Stamp string

// FromTime returns the stamp for the given instant, in UTC.
func FromTime(t time.Time) Stamp { return Stamp(t.UTC().Format(StampFormat)) }

// FromUnix returns the stamp for a UNIX epoch in seconds.
func FromUnix(sec int64) Stamp { return FromTime(time.Unix(sec, 0)) }

// Parse parses a Stamp from a string in StampFormat.
func Parse(str string) (Stamp, error) {
	t, err := time.Parse(StampFormat, str)
	if err != nil {
		return "", fmt.Errorf("invalid stamp %q want format %q: %w", str, StampFormat, err)
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Stamp {
	s, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// Time returns the instant this stamp represents, at UTC.
func (s Stamp) Time() time.Time {
	t, err := time.Parse(StampFormat, string(s))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Before reports whether the stamp s is before x.
func (s Stamp) Before(x Stamp) bool { return s < x }

// After reports whether the stamp s is after x.
func (s Stamp) After(x Stamp) bool { return s > x }

// Add returns a new Stamp shifted by the given duration.
func (s Stamp) Add(d time.Duration) Stamp { return FromTime(s.Time().Add(d)) }

// String formats the stamp in its standard format.
func (s Stamp) String() string { return string(s) }

// UnmarshalJSON implements the json specific way to unmarshal a stamp from a json string.
func (s *Stamp) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s Stamp) MarshalJSON() ([]byte, error) { return json.Marshal(string(s)) }
