package testutil

import (
	"testing"

	"github.com/GustavoCaso/carfinder/internal/catalog"
)

// Listings returns a 12-entry catalog: three "Acme" cars, two pairs of equal
// prices and every fuel type.
func Listings(t *testing.T) []catalog.Listing {
	t.Helper()

	return []catalog.Listing{
		{ID: "l01", Brand: "Acme", Model: "Roadster", Price: 52000, FuelType: catalog.Petrol, Seating: 2, Year: 2021, Mileage: 18000},
		{ID: "l02", Brand: "Zenith", Model: "Family", Price: 31000, FuelType: catalog.Diesel, Seating: 7, Year: 2020, Mileage: 64000},
		{ID: "l03", Brand: "Volt", Model: "Spark", Price: 27000, FuelType: catalog.Electric, Seating: 4, Year: 2023, Mileage: 4000},
		{ID: "l04", Brand: "Acme", Model: "Hatch", Price: 15000, FuelType: catalog.Petrol, Seating: 5, Year: 2019, Mileage: 72000},
		{ID: "l05", Brand: "Zenith", Model: "Cruiser", Price: 31000, FuelType: catalog.Hybrid, Seating: 5, Year: 2022, Mileage: 21000},
		{ID: "l06", Brand: "Volt", Model: "Surge", Price: 66000, FuelType: catalog.Electric, Seating: 5, Year: 2024, Mileage: 900},
		{ID: "l07", Brand: "Nomad", Model: "Trail", Price: 44000, FuelType: catalog.Diesel, Seating: 7, Year: 2021, Mileage: 39000},
		{ID: "l08", Brand: "Acme", Model: "Courier", Price: 22500, FuelType: catalog.Diesel, Seating: 2, Year: 2018, Mileage: 98000},
		{ID: "l09", Brand: "Nomad", Model: "Scout", Price: 19000, FuelType: catalog.Petrol, Seating: 5, Year: 2020, Mileage: 45000},
		{ID: "l10", Brand: "Orbit", Model: "Glide", Price: 38000, FuelType: catalog.Hybrid, Seating: 5, Year: 2023, Mileage: 8000},
		{ID: "l11", Brand: "Orbit", Model: "Vista", Price: 19000, FuelType: catalog.Hybrid, Seating: 4, Year: 2022, Mileage: 16000},
		{ID: "l12", Brand: "Volt", Model: "Arc", Price: 88000, FuelType: catalog.Electric, Seating: 4, Year: 2024, Mileage: 300},
	}
}

// Catalog wraps Listings in a catalog.Catalog.
func Catalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New(Listings(t))
	if err != nil {
		t.Fatalf("Failed to build test catalog: %v", err)
	}
	return c
}
