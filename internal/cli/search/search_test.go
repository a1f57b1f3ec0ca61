package search

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/session"
	"github.com/GustavoCaso/carfinder/internal/storage/memory"
	"github.com/GustavoCaso/carfinder/internal/testutil"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()

	return session.New(context.Background(), testutil.Catalog(t), memory.New(), 10, testutil.TestLogger(t))
}

func runSearch(t *testing.T, s *session.Session, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	cmd := &searchCommand{out: &buf}
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if err := cmd.search(s, "₹"); err != nil {
		t.Fatalf("search() error = %v", err)
	}
	return buf.String()
}

func TestSetFlags(t *testing.T) {
	cmd := NewCommand()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(fs)

	defaults := map[string]string{
		"q":       "",
		"brand":   "",
		"min":     "0",
		"max":     "0",
		"fuel":    "",
		"seating": "0",
		"sort":    "asc",
		"page":    "1",
		"json":    "false",
	}

	for name, want := range defaults {
		f := fs.Lookup(name)
		if f == nil {
			t.Errorf("Expected flag %q to be registered", name)
			continue
		}
		if f.DefValue != want {
			t.Errorf("flag %q default = %q, want %q", name, f.DefValue, want)
		}
	}
}

func TestSearchOutput(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
	}{
		{
			name:        "first page",
			args:        nil,
			contains:    []string{"Showing 12 of 12 cars", "Acme Hatch", "₹15,000", "Page 1 of 2"},
			notContains: []string{"Volt Arc", "filters active"},
		},
		{
			name:     "second page",
			args:     []string{"-page", "2"},
			contains: []string{"Volt Arc", "₹88,000", "Page 2 of 2"},
		},
		{
			name:        "brand filter",
			args:        []string{"-brand", "Acme", "-sort", "desc"},
			contains:    []string{"Showing 3 of 12 cars (filters active)", "Acme Roadster"},
			notContains: []string{"Page 1 of"},
		},
		{
			name:     "no results",
			args:     []string{"-q", "tractor"},
			contains: []string{"Showing 0 of 12 cars", "No cars match your search."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := runSearch(t, newTestSession(t), tt.args...)

			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(output, unwanted) {
					t.Errorf("Expected output not to contain %q, got:\n%s", unwanted, output)
				}
			}
		})
	}
}

func TestSearchOrder(t *testing.T) {
	color.NoColor = true

	output := runSearch(t, newTestSession(t), "-brand", "Acme", "-sort", "desc")

	roadster := strings.Index(output, "Acme Roadster")
	courier := strings.Index(output, "Acme Courier")
	hatch := strings.Index(output, "Acme Hatch")
	if !(roadster < courier && courier < hatch) {
		t.Errorf("Expected descending price order, got:\n%s", output)
	}
}

func TestSearchMarksFavorites(t *testing.T) {
	color.NoColor = true

	s := newTestSession(t)
	if _, err := s.ToggleFavorite(context.Background(), "l04"); err != nil {
		t.Fatal(err)
	}

	output := runSearch(t, s, "-brand", "Acme")
	if !strings.Contains(output, "* l04") {
		t.Errorf("Expected l04 to be marked as favorite, got:\n%s", output)
	}
}

func TestSearchJSON(t *testing.T) {
	output := runSearch(t, newTestSession(t), "-fuel", "Electric", "-json")

	var listings []catalog.Listing
	if err := json.Unmarshal([]byte(output), &listings); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}

	ids := make([]string, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	if diff := cmp.Diff([]string{"l03", "l06", "l12"}, ids); diff != "" {
		t.Errorf("listings mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchUnknownFuelType(t *testing.T) {
	var buf bytes.Buffer
	cmd := &searchCommand{out: &buf}
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse([]string{"-fuel", "Steam"}); err != nil {
		t.Fatal(err)
	}

	if err := cmd.search(newTestSession(t), "₹"); err == nil {
		t.Error("Expected an error for an unknown fuel type")
	}
}
