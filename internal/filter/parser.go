package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	ParamQuery    = "q"
	ParamBrand    = "brand"
	ParamMinPrice = "min_price"
	ParamMaxPrice = "max_price"
	ParamFuelType = "fuel_type"
	ParamSeating  = "seating"
	ParamSort     = "sort"
	ParamPage     = "page"
)

// parseAmount converts a price input to a number. Anything that is not a
// finite, non-negative number coerces to 0, which means "no bound".
func parseAmount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseSeating(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseSortOrder parses "asc" or "desc". Unknown values fall back to the default.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortDesc:
		return SortDesc
	case SortAsc:
		return SortAsc
	default:
		return DefaultSortOrder
	}
}

// ParsePage parses a 1-based page number, defaulting to 1.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseFields reads the flat filter fields from form or query values.
func ParseFields(params url.Values) Fields {
	return Fields{
		Brand:    params.Get(ParamBrand),
		MinPrice: parseAmount(params.Get(ParamMinPrice)),
		MaxPrice: parseAmount(params.Get(ParamMaxPrice)),
		FuelType: params.Get(ParamFuelType),
		Seating:  parseSeating(params.Get(ParamSeating)),
	}
}

// Parse parses URL query parameters into the search query, criteria and sort order.
// It never fails: malformed inputs are treated as unconstrained.
func Parse(params url.Values) (string, Criteria, SortOrder) {
	return params.Get(ParamQuery), ParseFields(params).Criteria(), ParseSortOrder(params.Get(ParamSort))
}

// Encode is the inverse of Parse, omitting unconstrained values.
func Encode(query string, c Criteria, order SortOrder) url.Values {
	params := url.Values{}
	if query != "" {
		params.Set(ParamQuery, query)
	}

	f := c.Fields()
	if f.Brand != "" {
		params.Set(ParamBrand, f.Brand)
	}
	if f.MinPrice != 0 {
		params.Set(ParamMinPrice, strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != 0 {
		params.Set(ParamMaxPrice, strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.FuelType != "" {
		params.Set(ParamFuelType, f.FuelType)
	}
	if f.Seating != 0 {
		params.Set(ParamSeating, strconv.Itoa(f.Seating))
	}

	if order != "" && order != DefaultSortOrder {
		params.Set(ParamSort, order.String())
	}

	return params
}
