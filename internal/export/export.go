package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/GustavoCaso/carfinder/internal/catalog"
)

var header = []string{"id", "brand", "model", "price", "fuelType", "seating", "year", "mileage", "imageUrl", "description"}

// CSV writes listings with a header row. The columns are the ones
// importutil.Catalog reads, so an export can be used as a catalog.
func CSV(writer io.Writer, listings []catalog.Listing) error {
	w := csv.NewWriter(writer)

	records := make([][]string, 0, len(listings)+1)
	records = append(records, header)

	for _, l := range listings {
		records = append(records, listingToCSVRecord(l))
	}

	// WriteAll flushes.
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}

	return nil
}

func listingToCSVRecord(l catalog.Listing) []string {
	return []string{
		l.ID,
		l.Brand,
		l.Model,
		strconv.FormatFloat(l.Price, 'f', -1, 64),
		string(l.FuelType),
		strconv.Itoa(l.Seating),
		strconv.Itoa(l.Year),
		strconv.FormatFloat(l.Mileage, 'f', -1, 64),
		l.ImageURL,
		l.Description,
	}
}
