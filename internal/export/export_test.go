package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	importutil "github.com/GustavoCaso/carfinder/internal/import"
	"github.com/GustavoCaso/carfinder/internal/testutil"
)

func TestCSV(t *testing.T) {
	listings := []catalog.Listing{
		{ID: "x1", Brand: "Acme", Model: "Hatch, Mk II", Price: 1449000, FuelType: catalog.Petrol, Seating: 5, Year: 2022, Mileage: 18.5, Description: `The "small" one`},
	}

	var buf bytes.Buffer
	if err := CSV(&buf, listings); err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	want := "id,brand,model,price,fuelType,seating,year,mileage,imageUrl,description\n" +
		`x1,Acme,"Hatch, Mk II",1449000,Petrol,5,2022,18.5,,"The ""small"" one"` + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, nil); err != nil {
		t.Fatalf("CSV() error = %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 1 {
		t.Errorf("expected only the header, got %d lines", lines)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	listings := testutil.Listings(t)

	var buf bytes.Buffer
	if err := CSV(&buf, listings); err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	c, err := importutil.Catalog("export.csv", &buf)
	if err != nil {
		t.Fatalf("importutil.Catalog() error = %v", err)
	}
	if diff := cmp.Diff(listings, c.Listings()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
