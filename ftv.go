package finview

// This file holds the grouping logic behind the FTV (fair-target-value)
// "latest snapshot per symbol" view: a user records discount positions over
// time, and the dashboard shows only the newest one per symbol.

// LatestBySymbol keeps the first item per symbol from a list ordered newest
// first, preserving that order. Items whose symbol was already seen are
// dropped.
func LatestBySymbol[T any](items []T, symbol func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	latest := make([]T, 0, len(items))
	for _, it := range items {
		key := symbol(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		latest = append(latest, it)
	}
	return latest
}
