// Package listview holds the shared table-state controller behind the admin
// list screens: a held collection fetched wholesale from the API, a pure
// filtered/sorted/paginated view over it, and call-then-mutate row actions
// guarded by a per-row pending marker.
package listview

import "strings"

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Toggle flips the direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Params are the view inputs. The view is pure: recomputable at any time from
// (held collection, Params) with no hidden memory.
type Params struct {
	Query     string
	SortField string
	Dir       Direction
	Page      int
	PerPage   int
}

// Normalized trims the query, defaults the direction to ascending, and clamps
// page/perPage to at least 1.
func (p Params) Normalized() Params {
	p.Query = strings.TrimSpace(p.Query)
	p.SortField = strings.TrimSpace(p.SortField)
	if p.Dir != Descending {
		p.Dir = Ascending
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
	return p
}

// SortClicked returns the params after a click on field's column header:
// toggle the direction when field is already active, otherwise select it
// ascending. Either way the page resets to 1.
func (p Params) SortClicked(field string) Params {
	p = p.Normalized()
	if p.SortField == field {
		p.Dir = p.Dir.Toggle()
	} else {
		p.SortField = field
		p.Dir = Ascending
	}
	p.Page = 1
	return p
}
