// Package paging carries the page-request triple (page number, page size,
// sort orders) from the HTTP layer down to the repositories.
package paging

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultSize is used when the size parameter is absent or out of range.
	DefaultSize = 20
	// MaxSize bounds how much a single page may ask for.
	MaxSize = 100
)

// Order is one sort instruction, e.g. "title,desc".
type Order struct {
	Property string
	Desc     bool
}

// PageRequest is a bounded, ordered slice request over a larger result set.
// Page numbers are zero-based.
type PageRequest struct {
	Page int
	Size int
	Sort []Order
}

// Parse reads page, size and sort query parameters. Out-of-range values
// fall back to the defaults rather than failing the request.
func Parse(q url.Values) PageRequest {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 0 {
		page = 0
	}
	size, _ := strconv.Atoi(q.Get("size"))
	if size <= 0 || size > MaxSize {
		size = DefaultSize
	}

	var sort []Order
	for _, raw := range q["sort"] {
		parts := strings.SplitN(raw, ",", 2)
		prop := strings.TrimSpace(parts[0])
		if prop == "" {
			continue
		}
		desc := len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc")
		sort = append(sort, Order{Property: prop, Desc: desc})
	}

	return PageRequest{Page: page, Size: size, Sort: sort}
}

// Offset returns the row offset this page starts at.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}
