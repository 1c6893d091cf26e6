package listview

import (
	"sort"
	"strings"
)

// Schema describes how to read records: identity, the fields searched by the
// free-text query, and the sortable fields by name. Accessors for missing
// values return the empty string.
type Schema[T any] struct {
	ID       func(T) string
	Search   []func(T) string
	Sortable map[string]func(T) string
}

// View is one derived page of the held collection.
type View[T any] struct {
	Items         []T
	TotalHeld     int
	TotalFiltered int
	Page          int
	TotalPages    int
	PerPage       int
	ShowingFrom   int
	ShowingTo     int
}

func (v View[T]) HasPrev() bool { return v.Page > 1 }
func (v View[T]) HasNext() bool { return v.Page < v.TotalPages }

// Derive computes the view: filter, then sort, then paginate. records is not
// mutated.
func Derive[T any](records []T, schema Schema[T], p Params) View[T] {
	p = p.Normalized()

	filtered := Filter(records, schema, p.Query)
	Sort(filtered, schema, p.SortField, p.Dir)

	total := len(filtered)
	totalPages := (total + p.PerPage - 1) / p.PerPage
	if totalPages < 1 {
		totalPages = 1
	}
	page := p.Page
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * p.PerPage
	end := offset + p.PerPage
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	showingFrom := 0
	showingTo := 0
	if total > 0 && end > offset {
		showingFrom = offset + 1
		showingTo = end
	}

	return View[T]{
		Items:         filtered[offset:end],
		TotalHeld:     len(records),
		TotalFiltered: total,
		Page:          page,
		TotalPages:    totalPages,
		PerPage:       p.PerPage,
		ShowingFrom:   showingFrom,
		ShowingTo:     showingTo,
	}
}

// Filter keeps records whose searchable fields contain the case-folded query
// substring. An empty or whitespace-only query keeps everything.
func Filter[T any](records []T, schema Schema[T], query string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]T, 0, len(records))
	if query == "" {
		return append(out, records...)
	}
	for _, record := range records {
		for _, field := range schema.Search {
			if strings.Contains(strings.ToLower(field(record)), query) {
				out = append(out, record)
				break
			}
		}
	}
	return out
}

// Sort orders records in place by the named field. An unknown or empty field
// leaves the held order (API response order) untouched. Ties keep no
// particular order beyond the comparator.
func Sort[T any](records []T, schema Schema[T], field string, dir Direction) {
	accessor, ok := schema.Sortable[field]
	if !ok {
		return
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := accessor(records[i]), accessor(records[j])
		if dir == Descending {
			return a > b
		}
		return a < b
	})
}
