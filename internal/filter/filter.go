// Package filter describes the search constraints and sort order applied to the catalog.
package filter

import "github.com/GustavoCaso/carfinder/internal/catalog"

// Criteria holds the structured constraints narrowing the catalog.
// All fields are pointers to distinguish "not set" from zero values. Match
// treats a set pointer as a literal bound; Normalize maps zero values to
// "not set", and the session applies it to every criteria it receives.
type Criteria struct {
	Brand    *string           // exact, case-sensitive
	MinPrice *float64          // inclusive
	MaxPrice *float64          // inclusive
	FuelType *catalog.FuelType // exact
	Seating  *int              // exact
}

// Active reports whether any constraint is set. It drives the filters indicator.
func (c Criteria) Active() bool {
	return c.Brand != nil || c.MinPrice != nil || c.MaxPrice != nil || c.FuelType != nil || c.Seating != nil
}

// Match reports whether l satisfies every set constraint.
func (c Criteria) Match(l catalog.Listing) bool {
	if c.Brand != nil && l.Brand != *c.Brand {
		return false
	}
	if c.MinPrice != nil && l.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && l.Price > *c.MaxPrice {
		return false
	}
	if c.FuelType != nil && l.FuelType != *c.FuelType {
		return false
	}
	if c.Seating != nil && l.Seating != *c.Seating {
		return false
	}
	return true
}

// Normalize drops constraints holding a zero value or an empty string, so a
// 0 bound means "no constraint" however the criteria were built.
func (c Criteria) Normalize() Criteria {
	return c.Fields().Criteria()
}

// Fields returns the zero-means-unset form of c.
func (c Criteria) Fields() Fields {
	var f Fields
	if c.Brand != nil {
		f.Brand = *c.Brand
	}
	if c.MinPrice != nil {
		f.MinPrice = *c.MinPrice
	}
	if c.MaxPrice != nil {
		f.MaxPrice = *c.MaxPrice
	}
	if c.FuelType != nil {
		f.FuelType = string(*c.FuelType)
	}
	if c.Seating != nil {
		f.Seating = *c.Seating
	}
	return f
}

// Fields is the flat filter shape used by forms and shared filter states:
// an empty string or a zero number means "no constraint".
type Fields struct {
	Brand    string  `json:"brand"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	FuelType string  `json:"fuelType"`
	Seating  int     `json:"seating"`
}

// Criteria converts f, dropping zero values. A literal zero bound cannot be expressed.
func (f Fields) Criteria() Criteria {
	var c Criteria
	if f.Brand != "" {
		brand := f.Brand
		c.Brand = &brand
	}
	if f.MinPrice != 0 {
		minPrice := f.MinPrice
		c.MinPrice = &minPrice
	}
	if f.MaxPrice != 0 {
		maxPrice := f.MaxPrice
		c.MaxPrice = &maxPrice
	}
	if f.FuelType != "" {
		fuel := catalog.FuelType(f.FuelType)
		c.FuelType = &fuel
	}
	if f.Seating != 0 {
		seating := f.Seating
		c.Seating = &seating
	}
	return c
}

// SortOrder orders results by price.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DefaultSortOrder is cheapest first.
const DefaultSortOrder = SortAsc

func (o SortOrder) String() string {
	return string(o)
}

// Toggle flips between ascending and descending.
func (o SortOrder) Toggle() SortOrder {
	if o == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// SeatingOptions are the capacities offered by the seating dropdown.
var SeatingOptions = []int{2, 4, 5, 7}
