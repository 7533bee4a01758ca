// Package filter provides pure filter functions over a loaded page of
// records. All functions are simple: records in, records out. No side
// effects, no network — filtering runs entirely over the already-fetched
// page, never the whole remote collection.
package filter

import "strings"

// Record exposes every field of a record as a string, keyed by wire name.
// Search and per-field filters evaluate over these values.
type Record interface {
	FieldValues() map[string]string
}

// Filter is the single active (field, value) pair narrowing the visible
// rows. The zero value means no filter. At most one filter is active at a
// time; selecting a new field replaces the previous filter wholesale.
type Filter struct {
	Key   string
	Value string
}

// Active reports whether the filter narrows anything.
func (f Filter) Active() bool {
	return f.Key != "" && f.Value != ""
}

// Visible returns the subset of items to render: records matching the
// free-text search term (any field, case-insensitive substring) and the
// active filter's per-field predicate. Relative order is preserved.
func Visible[R Record](items []R, term string, f Filter) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		fields := item.FieldValues()
		if term != "" && !matchesSearch(fields, term) {
			continue
		}
		if f.Active() && !matchesFilter(fields, f) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// matchesSearch reports whether any field value contains the term,
// case-insensitive.
func matchesSearch(fields map[string]string, term string) bool {
	needle := strings.ToLower(term)
	for _, v := range fields {
		if v != "" && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// matchesFilter applies the per-key predicate. A record with an empty value
// for the filtered key never matches a non-empty filter value.
func matchesFilter(fields map[string]string, f Filter) bool {
	value := strings.ToLower(f.Value)

	switch f.Key {
	case "gender":
		// Exact match, not substring: "fem" must not match "female".
		got := fields["gender"]
		return got != "" && strings.ToLower(got) == value
	case "firstName":
		// The name filter matches on either first or last name.
		return containsFold(fields["firstName"], value) ||
			containsFold(fields["lastName"], value)
	default:
		return containsFold(fields[f.Key], value)
	}
}

// containsFold is a case-insensitive substring check with an empty-value
// guard. needle is already lowercased.
func containsFold(haystack, needle string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}
