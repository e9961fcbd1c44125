// Package pagination implements the shared page/size state behind every
// server-side table: parse page parameters, derive the range-query offset
// and build response metadata from the total row count.
package pagination

import (
	"net/http"
	"strconv"

	"campus-clinic-api/pkg/response"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is the requested window of a server-side table.
type Page struct {
	Number int
	Limit  int
}

// FromRequest parses "page" and "limit" query parameters, falling back to
// defaults and clamping out-of-range values.
func FromRequest(r *http.Request) Page {
	page := Page{Number: DefaultPage, Limit: DefaultLimit}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page.Number = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page.Limit = n
		}
	}
	if page.Limit > MaxLimit {
		page.Limit = MaxLimit
	}
	return page
}

// Offset is the first row index of the requested window.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// HasNext reports whether rows exist beyond this window.
func (p Page) HasNext(total int64) bool {
	return int64(p.Number)*int64(p.Limit) < total
}

// HasPrev reports whether a previous window exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// Meta builds the response metadata for the window given the total count.
func (p Page) Meta(total int64) *response.Meta {
	totalPages := int(total / int64(p.Limit))
	if total%int64(p.Limit) != 0 {
		totalPages++
	}
	return &response.Meta{
		Page:       p.Number,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
