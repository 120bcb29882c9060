package game

import "strings"

// matchIndex resolves target against a pool of named things. Comparison
// is case-insensitive and whitespace-trimmed; an exact name wins
// outright, and a prefix of the name or of any of its words succeeds
// only when it singles out one entry.
func matchIndex[T any](target string, pool []T, name func(T) string) (int, bool) {
	normalized := strings.ToLower(strings.TrimSpace(target))
	if normalized == "" {
		return -1, false
	}

	partial := -1
	ambiguous := false
	for i, entry := range pool {
		candidate := strings.ToLower(strings.TrimSpace(name(entry)))
		if candidate == normalized {
			return i, true
		}
		if !matchesPrefix(candidate, normalized) {
			continue
		}
		if partial != -1 {
			ambiguous = true
			continue
		}
		partial = i
	}
	if partial == -1 || ambiguous {
		return -1, false
	}
	return partial, true
}

// matchName is matchIndex for callers that only need the entry itself.
func matchName[T any](target string, pool []T, name func(T) string) (T, bool) {
	idx, ok := matchIndex(target, pool, name)
	if !ok {
		var zero T
		return zero, false
	}
	return pool[idx], true
}

func matchesPrefix(candidate, normalized string) bool {
	if strings.HasPrefix(candidate, normalized) {
		return true
	}
	for _, word := range strings.Fields(candidate) {
		if strings.HasPrefix(word, normalized) {
			return true
		}
	}
	return false
}

func itemName(item *Item) string { return item.Name }
