package timeseries

import (
	"iter"
	"slices"
	"sort"
)

// Series stores a chronological series of values, each associated with a
// specific stamp. It ensures that stamps are unique and the series is always
// sorted.
type Series[T float32 | float64 | string] struct {
	stamps []Stamp
	values []T
}

// Latest returns the latest stamp and value in the series.
// If the series is empty, it returns zero values.
func (s *Series[T]) Latest() (at Stamp, value T) {
	last := len(s.stamps) - 1
	if last < 0 {
		return "", *new(T)
	}
	return s.stamps[last], s.values[last]
}

// First returns the earliest stamp and value in the series.
// If the series is empty, it returns zero values.
func (s *Series[T]) First() (at Stamp, value T) {
	if len(s.stamps) == 0 {
		return "", *new(T)
	}
	return s.stamps[0], s.values[0]
}

// Clear removes all items from the series.
func (s *Series[T]) Clear() {
	s.stamps = s.stamps[:0]
	s.values = s.values[:0]
}

// Len returns the number of items in the series.
func (s *Series[T]) Len() int { return len(s.stamps) }

// chronological is a private implementation to make this series chronologically sorted.
type chronological[T float32 | float64 | string] struct{ *Series[T] }

func (c chronological[T]) Less(i, j int) bool { return c.stamps[i].Before(c.stamps[j]) }

func (c chronological[T]) Swap(i, j int) {
	c.stamps[i], c.stamps[j] = c.stamps[j], c.stamps[i]
	c.values[i], c.values[j] = c.values[j], c.values[i]
}

func (s *Series[T]) sort() { sort.Sort(chronological[T]{s}) }

// Append adds a point to the series.
//
// An existing value at that exact stamp is overwritten: the last data wins.
func (s *Series[T]) Append(at Stamp, v T) *Series[T] {
	if i := slices.Index(s.stamps, at); i >= 0 {
		s.values[i] = v
		return s
	}
	s.stamps, s.values = append(s.stamps, at), append(s.values, v)
	s.sort()
	return s
}

// Values returns an iterator over all stamp/value pairs in the series, in
// chronological order.
func (s *Series[T]) Values() iter.Seq2[Stamp, T] {
	return func(yield func(Stamp, T) bool) {
		for i, at := range s.stamps {
			if !yield(at, s.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'at' and true, or zero value and false.
func (s *Series[T]) Get(at Stamp) (T, bool) {
	var value T
	i := slices.Index(s.stamps, at)
	if i >= 0 {
		return s.values[i], true
	}
	return value, false
}

// ValueAsOf returns the value at a given stamp, or the most recent value
// before it. It returns the value and true if found, otherwise the zero
// value and false.
//
// This is the forward-fill primitive: a symbol missing a bar at an instant
// is valued at its last known price.
func (s *Series[T]) ValueAsOf(at Stamp) (T, bool) {
	// The stamps slice is sorted, so we can use binary search.
	i, found := slices.BinarySearchFunc(s.stamps, at, func(a, b Stamp) int {
		if a.After(b) {
			return 1
		}
		if a.Before(b) {
			return -1
		}
		return 0
	})

	if found {
		return s.values[i], true
	}

	// Not found. `i` is the index where `at` would be inserted.
	// The value we want is at `i-1`, the last entry before the target stamp.
	if i == 0 {
		var zero T
		return zero, false
	}
	return s.values[i-1], true
}
