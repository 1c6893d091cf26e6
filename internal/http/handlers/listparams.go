package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/yefe-app/yefe-console/internal/http/viewmodels"
	"github.com/yefe-app/yefe-console/internal/listview"
)

func parsePageParam(raw string) int {
	page := 1
	if raw = strings.TrimSpace(raw); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	return page
}

// listParams reads the table state from the query string.
func (h *Handlers) listParams(c *echo.Context) listview.Params {
	return listview.Params{
		Query:     c.QueryParam("q"),
		SortField: c.QueryParam("sort"),
		Dir:       listview.Direction(strings.TrimSpace(c.QueryParam("dir"))),
		Page:      parsePageParam(c.QueryParam("page")),
		PerPage:   h.Cfg.ItemsPerPage,
	}.Normalized()
}

// returnParams reads the same table state back out of a mutation form, so the
// redirect after an action lands on the page the operator was looking at.
func (h *Handlers) returnParams(c *echo.Context) listview.Params {
	return listview.Params{
		Query:     c.FormValue("q"),
		SortField: c.FormValue("sort"),
		Dir:       listview.Direction(strings.TrimSpace(c.FormValue("dir"))),
		Page:      parsePageParam(c.FormValue("page")),
		PerPage:   h.Cfg.ItemsPerPage,
	}.Normalized()
}

// listURL rebuilds a list URL from params, omitting defaults to keep the
// address bar clean.
func listURL(path string, p listview.Params) string {
	q := url.Values{}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.SortField != "" {
		q.Set("sort", p.SortField)
		q.Set("dir", string(p.Dir))
	}
	if p.Page > 1 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if encoded := q.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

func refreshURL(path string, p listview.Params) string {
	base := listURL(path, p)
	if strings.Contains(base, "?") {
		return base + "&refresh=1"
	}
	return base + "?refresh=1"
}

type columnSpec struct {
	Field    string
	Label    string
	Sortable bool
}

// buildTable assembles the shared table viewmodel: header hrefs, pagination
// hrefs, and the derived page window.
func buildTable[T any](path string, p listview.Params, view listview.View[T], columns []columnSpec) viewmodels.TableData {
	table := viewmodels.TableData{
		Query:         p.Query,
		SortField:     p.SortField,
		Dir:           string(p.Dir),
		Page:          view.Page,
		TotalPages:    view.TotalPages,
		TotalFiltered: view.TotalFiltered,
		TotalHeld:     view.TotalHeld,
		ShowingFrom:   view.ShowingFrom,
		ShowingTo:     view.ShowingTo,
		HasPrev:       view.HasPrev(),
		HasNext:       view.HasNext(),
		RefreshHref:   refreshURL(path, p),
		SearchAction:  path,
	}
	for _, col := range columns {
		header := viewmodels.SortColumn{Field: col.Field, Label: col.Label}
		if col.Sortable {
			header.Href = listURL(path, p.SortClicked(col.Field))
			if p.SortField == col.Field {
				if p.Dir == listview.Descending {
					header.Indicator = "▼"
				} else {
					header.Indicator = "▲"
				}
			}
		}
		table.Columns = append(table.Columns, header)
	}
	if view.HasPrev() {
		prev := p
		prev.Page = view.Page - 1
		table.PrevHref = listURL(path, prev)
	}
	if view.HasNext() {
		next := p
		next.Page = view.Page + 1
		table.NextHref = listURL(path, next)
	}
	return table
}
