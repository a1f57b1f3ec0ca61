// Package selection narrows and orders catalog listings.
package selection

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/filter"
)

// Select returns the listings matching query and criteria, ordered by price.
// Listings with equal prices keep their input order. The input is not modified.
func Select(listings []catalog.Listing, query string, criteria filter.Criteria, order filter.SortOrder) []catalog.Listing {
	needle := strings.ToLower(query)

	selected := make([]catalog.Listing, 0, len(listings))
	for _, l := range listings {
		if needle != "" && !strings.Contains(strings.ToLower(l.Name()), needle) {
			continue
		}
		if !criteria.Match(l) {
			continue
		}
		selected = append(selected, l)
	}

	slices.SortStableFunc(selected, func(a, b catalog.Listing) int {
		if order == filter.SortDesc {
			return comparePrice(b, a)
		}
		return comparePrice(a, b)
	})

	return selected
}

func comparePrice(a, b catalog.Listing) int {
	switch {
	case a.Price < b.Price:
		return -1
	case a.Price > b.Price:
		return 1
	default:
		return 0
	}
}
