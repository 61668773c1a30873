// Package catalog is the content-negotiated query and pagination layer:
// keyword filtering, page windowing, format resolution and the JSON, JSONP,
// XML and RSS encodings of products and categories.
package catalog

import "strconv"

// PerPage is the fixed window size for every listing endpoint.
const PerPage = 10

// Page is one pagination window over an ordered collection, plus the
// metadata views and feeds need.
type Page[T any] struct {
	Items       []T
	TotalCount  int
	TotalPages  int
	CurrentPage int
	PerPage     int
}

func (p Page[T]) HasPrev() bool { return p.CurrentPage > 1 }
func (p Page[T]) HasNext() bool { return p.CurrentPage < p.TotalPages }
func (p Page[T]) PrevPage() int { return p.CurrentPage - 1 }
func (p Page[T]) NextPage() int { return p.CurrentPage + 1 }

// ParsePage interprets the raw page query parameter. Anything absent,
// unparseable or below 1 means page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate windows items to the 1-indexed page of size perPage. Filtering
// happens before pagination, so TotalCount is the size of the collection
// handed in, not of any underlying table. A page past the end yields an
// empty window, never an error.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if page < 1 {
		page = 1
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	offset := (page - 1) * perPage
	end := offset + perPage
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[offset:end],
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PerPage:     perPage,
	}
}
