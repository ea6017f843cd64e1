// Package query implements the list engine shared by every admin console
// list screen: free-text search, status filtering, column sorting and
// pagination over a collection snapshot. For a fixed snapshot and spec the
// result is fully deterministic; input order (insertion order) breaks ties.
package query

import (
	"sort"
	"strings"
)

// Direction orders a sorted listing.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// StatusAll is the sentinel status value that disables status filtering.
const StatusAll = "all"

// Spec carries the filter/sort/page parameters supplied by a list screen.
type Spec struct {
	// Search is matched case-insensitively as a substring against the
	// view's configured text fields; empty matches everything.
	Search string
	// Status filters by exact status; empty or StatusAll disables it.
	Status string
	// SortField selects a comparator from the view; unknown fields fall
	// back to the view's default (creation time).
	SortField string
	// Direction defaults to Ascending.
	Direction Direction
	// Page is 1-based. PageSize <= 0 returns the whole result in one page.
	Page     int
	PageSize int
}

// Result is one page of a listing plus the total match count before
// pagination, from which callers derive the page count.
type Result[T any] struct {
	Items         []T
	TotalMatching int
}

// View adapts an entity kind to the engine: which fields are searchable,
// how to read its status, and the named sort comparators it supports.
type View[T any] struct {
	SearchFields func(T) []string
	// Status is nil for kinds without a status dimension.
	Status func(T) string
	// SortKeys maps sort field names to three-way comparators.
	SortKeys map[string]func(a, b T) int
	// DefaultSort names the comparator used when SortField is absent or
	// unknown.
	DefaultSort string
}

// List filters, sorts and paginates a snapshot according to spec.
func List[T any](items []T, spec Spec, view View[T]) Result[T] {
	matched := make([]T, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(spec.Search))
	for _, item := range items {
		if !matchesSearch(item, search, view) {
			continue
		}
		if !matchesStatus(item, spec.Status, view) {
			continue
		}
		matched = append(matched, item)
	}

	cmp := view.SortKeys[spec.SortField]
	if cmp == nil {
		cmp = view.SortKeys[view.DefaultSort]
	}
	if cmp != nil {
		sort.SliceStable(matched, func(i, j int) bool {
			if spec.Direction == Descending {
				return cmp(matched[i], matched[j]) > 0
			}
			return cmp(matched[i], matched[j]) < 0
		})
	}

	total := len(matched)
	page := spec.Page
	if page < 1 {
		page = 1
	}
	if spec.PageSize <= 0 {
		return Result[T]{Items: matched, TotalMatching: total}
	}

	start := (page - 1) * spec.PageSize
	if start >= total {
		return Result[T]{Items: []T{}, TotalMatching: total}
	}
	end := start + spec.PageSize
	if end > total {
		end = total
	}
	return Result[T]{Items: matched[start:end], TotalMatching: total}
}

func matchesSearch[T any](item T, search string, view View[T]) bool {
	if search == "" || view.SearchFields == nil {
		return true
	}
	for _, field := range view.SearchFields(item) {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func matchesStatus[T any](item T, status string, view View[T]) bool {
	if status == "" || strings.EqualFold(status, StatusAll) || view.Status == nil {
		return true
	}
	return strings.EqualFold(view.Status(item), status)
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
