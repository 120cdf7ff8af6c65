package catalog

import "strings"

// Project returns the records whose search fields contain query, ignoring
// case and surrounding whitespace. An empty query matches every record. The
// result is always a new slice in the input order.
func Project[R Record](items []R, query string) []R {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]R, 0, len(items))
	for _, item := range items {
		if needle == "" || matches(item, needle) {
			out = append(out, item)
		}
	}
	return out
}

func matches(r Record, needle string) bool {
	for _, field := range r.SearchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Without returns the records whose key differs from id, in order.
func Without[R Record](items []R, id string) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		if item.Key() != id {
			out = append(out, item)
		}
	}
	return out
}

// Clone returns a copy of items. A nil or empty input yields an empty,
// non-nil slice so callers can tell "no records" from "not loaded".
func Clone[R any](items []R) []R {
	out := make([]R, len(items))
	copy(out, items)
	return out
}
