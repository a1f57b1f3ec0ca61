package catalog

import "fmt"

// FuelType is the propulsion of a listed car.
type FuelType string

const (
	Petrol   FuelType = "Petrol"
	Diesel   FuelType = "Diesel"
	Electric FuelType = "Electric"
	Hybrid   FuelType = "Hybrid"
)

// FuelTypes lists every supported fuel type in display order.
var FuelTypes = []FuelType{Petrol, Diesel, Electric, Hybrid}

func (f FuelType) Valid() bool {
	for _, ft := range FuelTypes {
		if ft == f {
			return true
		}
	}
	return false
}

// Listing is one catalog entry. Field names in JSON match the persisted
// wishlist format, so every field is serialized.
type Listing struct {
	ID          string   `json:"id"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Price       float64  `json:"price"`
	FuelType    FuelType `json:"fuelType"`
	Seating     int      `json:"seating"`
	Year        int      `json:"year"`
	Mileage     float64  `json:"mileage"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
}

// Name is the brand and model joined by a space, the text free-text search matches against.
func (l Listing) Name() string {
	return l.Brand + " " + l.Model
}

func (l Listing) validate() error {
	if l.ID == "" {
		return fmt.Errorf("listing without id")
	}
	if l.Price < 0 {
		return fmt.Errorf("listing %s: negative price %v", l.ID, l.Price)
	}
	if !l.FuelType.Valid() {
		return fmt.Errorf("listing %s: unknown fuel type %q", l.ID, l.FuelType)
	}
	if l.Seating <= 0 {
		return fmt.Errorf("listing %s: seating must be positive, got %d", l.ID, l.Seating)
	}
	return nil
}
