package service

import (
	"cmp"
	"slices"
	"strings"
)

// ListQuery is the search and sort state of an admin table.
type ListQuery struct {
	Search string
	SortBy string
	Desc   bool
}

func matchesSearch(search string, fields ...string) bool {
	search = strings.TrimSpace(strings.ToLower(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

type comparator[T any] func(a, b T) int

func byString[T any](get func(T) string) comparator[T] {
	return func(a, b T) int { return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b))) }
}

func byOrdered[T any, V cmp.Ordered](get func(T) V) comparator[T] {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

// applyQuery filters items by keep and the search text, then stable-sorts them.
// An unknown sort field keeps the backend order.
func applyQuery[T any](items []T, q ListQuery, keep func(T) bool, text func(T) []string, sorters map[string]comparator[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep != nil && !keep(it) {
			continue
		}
		if !matchesSearch(q.Search, text(it)...) {
			continue
		}
		out = append(out, it)
	}
	if less, ok := sorters[q.SortBy]; ok {
		slices.SortStableFunc(out, func(a, b T) int {
			if q.Desc {
				return less(b, a)
			}
			return less(a, b)
		})
	}
	return out
}
