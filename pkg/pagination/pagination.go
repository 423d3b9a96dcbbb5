package pagination

import (
	"net/http"
	"strconv"
)

// DefaultLimit is the number of items per page when the client does not ask
// for a specific limit.
const DefaultLimit = 8

// maxLimit caps the per-page size a client may request.
const maxLimit = 100

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// DefaultParams returns sensible pagination defaults.
func DefaultParams() Params {
	return Params{
		Page:   1,
		Limit:  DefaultLimit,
		Offset: 0,
	}
}

// FromRequest extracts `page` and `limit` parameters from an HTTP request.
// Invalid or out-of-range values fall back to the defaults.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 && v <= maxLimit {
			p.Limit = v
		}
	}

	p.Offset = p.Limit * (p.Page - 1)
	return p
}

// Result wraps one page of a filtered result set.
type Result[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// NewResult creates a paginated result. Pages is ceil(total/limit).
func NewResult[T any](items []T, total int, params Params) Result[T] {
	pages := total / params.Limit
	if total%params.Limit > 0 {
		pages++
	}
	if items == nil {
		items = []T{}
	}

	return Result[T]{
		Items: items,
		Total: total,
		Page:  params.Page,
		Pages: pages,
	}
}

// Slice returns the half-open index range [lo, hi) of the page within a result
// set of the given size. It is used by in-memory stores; database-backed
// stores push the same arithmetic into skip/limit.
func (p Params) Slice(total int) (lo, hi int) {
	lo = p.Offset
	if lo > total {
		lo = total
	}
	hi = lo + p.Limit
	if hi > total {
		hi = total
	}
	return lo, hi
}
