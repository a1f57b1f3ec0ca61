package importutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/GustavoCaso/carfinder/internal/catalog"
)

// Columns understood by the mapper. Header matching ignores case, spaces
// and underscores, so "Fuel Type", "fuel_type" and "fuelType" are the same.
const (
	columnID          = "id"
	columnBrand       = "brand"
	columnModel       = "model"
	columnPrice       = "price"
	columnFuelType    = "fueltype"
	columnSeating     = "seating"
	columnYear        = "year"
	columnMileage     = "mileage"
	columnImageURL    = "imageurl"
	columnDescription = "description"
)

var requiredColumns = []string{columnID, columnBrand, columnModel, columnPrice, columnFuelType, columnSeating}

func normalizeHeader(h string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(h)))
}

// RowError is a row that could not become a listing. Row is 1-based and
// does not count the header.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// MappingResult contains the listings built from a file and the rows that failed.
type MappingResult struct {
	Listings []catalog.Listing
	Errors   []RowError
}

// Err joins every row error, or returns nil.
func (r *MappingResult) Err() error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// ApplyMapping converts parsed rows into listings by header name.
func ApplyMapping(data *ParsedData) (*MappingResult, error) {
	index := make(map[string]int, len(data.Headers))
	for i, h := range data.Headers {
		index[normalizeHeader(h)] = i
	}

	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("missing required column %q", column)
		}
	}

	result := &MappingResult{
		Listings: make([]catalog.Listing, 0, len(data.Rows)),
	}

	for i, row := range data.Rows {
		listing, err := mapRow(row, index)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Err: err})
			continue
		}
		result.Listings = append(result.Listings, listing)
	}

	return result, nil
}

func mapRow(row []string, index map[string]int) (catalog.Listing, error) {
	value := func(column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var l catalog.Listing
	var err error

	l.ID = value(columnID)
	l.Brand = value(columnBrand)
	l.Model = value(columnModel)
	l.FuelType = catalog.FuelType(value(columnFuelType))
	l.ImageURL = value(columnImageURL)
	l.Description = value(columnDescription)

	if l.Price, err = parseNumber(value(columnPrice)); err != nil {
		return l, fmt.Errorf("invalid price: %w", err)
	}

	if l.Seating, err = strconv.Atoi(value(columnSeating)); err != nil {
		return l, fmt.Errorf("invalid seating: %w", err)
	}

	if year := value(columnYear); year != "" {
		if l.Year, err = strconv.Atoi(year); err != nil {
			return l, fmt.Errorf("invalid year: %w", err)
		}
	}

	if mileage := value(columnMileage); mileage != "" {
		if l.Mileage, err = parseNumber(mileage); err != nil {
			return l, fmt.Errorf("invalid mileage: %w", err)
		}
	}

	return l, nil
}

// parseNumber accepts thousands separators, e.g. "1,449,000".
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
