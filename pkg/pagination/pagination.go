package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	defaultPerPage = 24
	maxPerPage     = 96
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns the first page at the storefront grid size.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: defaultPerPage}
}

// New builds Params, replacing out-of-range values with defaults. Pages past
// the addressable range are clamped to the last one.
func New(page, perPage int) Params {
	p := DefaultParams()
	if perPage > 0 && perPage <= maxPerPage {
		p.PerPage = perPage
	}
	if page > 0 {
		p.Page = min(page, maxPage(p.PerPage))
	}
	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// maxPage is the largest page whose offset fits in an int.
func maxPage(perPage int) int {
	return math.MaxInt/perPage + 1
}

// FromRequest extracts pagination parameters from the page and per_page query values.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return New(page, perPage)
}

// Slice returns the window of items selected by p. Out-of-range pages yield an empty slice.
func Slice[T any](items []T, p Params) []T {
	if p.Offset < 0 || p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

// TotalPages returns the number of pages needed for totalCount items.
func TotalPages(totalCount, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := totalCount / perPage
	if totalCount%perPage > 0 {
		pages++
	}
	return pages
}
