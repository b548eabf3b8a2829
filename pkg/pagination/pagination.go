// Package pagination parses list-query parameters and applies them as GORM
// scopes.
//
// Semantics shared by every list endpoint: page/limit default to 1/10,
// skip = (page-1)*limit, a page beyond the available rows yields an empty
// list (never an error), and order applies to created_at with "desc" as the
// default direction.
package pagination

import (
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params carries the parsed list-query parameters.
type Params struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search,omitempty"`
	Order  string `json:"order"` // "asc" | "desc"
}

// FromRequest parses search/order/page/limit from the query string, applying
// defaults and clamping nonsense values.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = DefaultPage
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = DefaultLimit
	}

	order := strings.ToLower(q.Get("order"))
	if order != "asc" {
		order = "desc"
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(q.Get("search")),
		Order:  order,
	}
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Scope applies offset, limit, and created_at ordering to a GORM query.
func (p Params) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Limit).Order("created_at " + p.Order)
}

// TotalPages computes the page count for a known total row count.
func (p Params) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return pages
}
