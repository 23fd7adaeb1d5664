package util

/**
 * Generic shared utilities
 */

// SliceIncludes returns true if slice includes value
func SliceIncludes[T comparable](s []T, val T) bool {
	for _, v := range s {
		if v == val {
			return true
		}
	}
	return false
}

// Dedupe returns a copy of s with repeated values removed, keeping the
// first occurrence of each
func Dedupe[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	result := []T{}

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
