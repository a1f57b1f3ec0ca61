// Package pagination slices an ordered result set into fixed-size pages.
package pagination

import "github.com/GustavoCaso/carfinder/internal/catalog"

// DefaultPageSize is the number of listings shown per page.
const DefaultPageSize = 10

// Page is one visible window over a result set.
type Page struct {
	Visible    []catalog.Listing
	Number     int
	Size       int
	Total      int // items across all pages
	TotalPages int
}

// TotalPages is ceil(total / size). An empty result has zero pages.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate returns the listings on 1-based page. Pages outside the available
// range yield an empty Visible slice. A size below 1 uses DefaultPageSize.
func Paginate(items []catalog.Listing, size, page int) Page {
	if size < 1 {
		size = DefaultPageSize
	}

	p := Page{
		Visible:    []catalog.Listing{},
		Number:     page,
		Size:       size,
		Total:      len(items),
		TotalPages: TotalPages(len(items), size),
	}

	if page < 1 || page > p.TotalPages {
		return p
	}

	start := (page - 1) * size
	end := min(start+size, len(items))
	p.Visible = items[start:end:end]

	return p
}

// HasPrevious reports whether a page precedes p.
func (p Page) HasPrevious() bool {
	return p.Number > 1
}

// HasNext reports whether a page follows p.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// Previous is the page before p, never below 1.
func (p Page) Previous() int {
	return max(1, p.Number-1)
}

// Next is the page after p, never beyond the last page.
func (p Page) Next() int {
	return max(1, min(p.TotalPages, p.Number+1))
}

// Numbers lists every page number, 1..TotalPages.
func (p Page) Numbers() []int {
	numbers := make([]int, p.TotalPages)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}
