package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/cli"
	"github.com/GustavoCaso/carfinder/internal/config"
	"github.com/GustavoCaso/carfinder/internal/router"
	"github.com/GustavoCaso/carfinder/internal/session"
	"github.com/GustavoCaso/carfinder/internal/storage"
	"github.com/GustavoCaso/carfinder/internal/testutil"
)

type listingsPage struct {
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Filtered   int               `json:"filtered"`
	Listings   []catalog.Listing `json:"listings"`
}

// startServer builds the whole stack on a sqlite database at dbPath, the way
// the web command does, over the embedded catalog.
func startServer(t *testing.T, dbPath string) (*httptest.Server, *session.Session) {
	t.Helper()

	logger := testutil.TestLogger(t)
	conf := &config.Config{
		Storage:  config.StorageSQLite,
		DB:       config.DBConfig{Source: dbPath, MaxOpenConns: 1, JournalMode: "WAL", BusyTimeout: 5000},
		PageSize: 10,
		Currency: "₹",
	}

	s, cache, err := cli.NewSession(context.Background(), conf, logger)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	handler, _ := router.New(s, router.Options{Currency: conf.Currency}, logger)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server, s
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func fetchPage(t *testing.T, server *httptest.Server, query string) listingsPage {
	t.Helper()

	resp, err := http.Get(server.URL + "/api/listings?" + query)
	if err != nil {
		t.Fatalf("GET /api/listings?%s: %v", query, err)
	}
	defer resp.Body.Close()

	var page listingsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return page
}

// TestFilteringEndToEnd runs search requests through HTTP, the session and
// the selection pipeline over the embedded catalog.
func TestFilteringEndToEnd(t *testing.T) {
	server, _ := startServer(t, filepath.Join(t.TempDir(), "carfinder.db"))

	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		queryString    string
		expectedCount  int
		expectedPages  int
		check          func(catalog.Listing) bool
		wantDescending bool
	}{
		{
			name:          "no filters - whole catalog",
			queryString:   "",
			expectedCount: c.Len(),
			expectedPages: (c.Len() + 9) / 10,
			check:         func(catalog.Listing) bool { return true },
		},
		{
			name:          "brand",
			queryString:   "brand=Tata",
			expectedCount: countWhere(c, func(l catalog.Listing) bool { return l.Brand == "Tata" }),
			expectedPages: 1,
			check:         func(l catalog.Listing) bool { return l.Brand == "Tata" },
		},
		{
			name:           "electric cars by descending price",
			queryString:    "fuel_type=Electric&sort=desc",
			expectedCount:  countWhere(c, func(l catalog.Listing) bool { return l.FuelType == catalog.Electric }),
			expectedPages:  1,
			check:          func(l catalog.Listing) bool { return l.FuelType == catalog.Electric },
			wantDescending: true,
		},
		{
			name:          "price range",
			queryString:   "min_price=800000&max_price=1500000",
			expectedCount: countWhere(c, func(l catalog.Listing) bool { return l.Price >= 800000 && l.Price <= 1500000 }),
			check:         func(l catalog.Listing) bool { return l.Price >= 800000 && l.Price <= 1500000 },
		},
		{
			name:          "zero bounds mean unconstrained",
			queryString:   "min_price=0&max_price=0&seating=0",
			expectedCount: c.Len(),
			check:         func(catalog.Listing) bool { return true },
		},
		{
			name:          "no match",
			queryString:   "q=tractor",
			expectedCount: 0,
			expectedPages: 0,
			check:         func(catalog.Listing) bool { return false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := fetchPage(t, server, tt.queryString)

			if page.Filtered != tt.expectedCount {
				t.Errorf("Filtered = %d, want %d", page.Filtered, tt.expectedCount)
			}
			if tt.expectedPages > 0 && page.TotalPages != tt.expectedPages {
				t.Errorf("TotalPages = %d, want %d", page.TotalPages, tt.expectedPages)
			}
			if tt.expectedCount == 0 && (page.TotalPages != 0 || len(page.Listings) != 0) {
				t.Errorf("expected an empty result, got %+v", page)
			}

			for i, l := range page.Listings {
				if !tt.check(l) {
					t.Errorf("listing %s does not satisfy the filters", l.ID)
				}
				if i == 0 {
					continue
				}
				prev := page.Listings[i-1]
				if tt.wantDescending && prev.Price < l.Price {
					t.Errorf("%s before %s breaks descending order", prev.ID, l.ID)
				}
				if !tt.wantDescending && prev.Price > l.Price {
					t.Errorf("%s before %s breaks ascending order", prev.ID, l.ID)
				}
			}
		})
	}
}

func TestPaginationEndToEnd(t *testing.T) {
	server, _ := startServer(t, filepath.Join(t.TempDir(), "carfinder.db"))

	first := fetchPage(t, server, "")
	seen := map[string]bool{}
	for page := 1; page <= first.TotalPages; page++ {
		p := fetchPage(t, server, "page="+strconv.Itoa(page))
		if p.Page != page {
			t.Fatalf("requested page %d, got %d", page, p.Page)
		}
		for _, l := range p.Listings {
			if seen[l.ID] {
				t.Errorf("listing %s appears on more than one page", l.ID)
			}
			seen[l.ID] = true
		}
	}

	if len(seen) != first.Filtered {
		t.Errorf("pages hold %d listings, want %d", len(seen), first.Filtered)
	}

	// A filter change always lands on the first page.
	if p := fetchPage(t, server, "page=2&brand=Tata"); p.Page != 1 {
		t.Errorf("page = %d after changing filters, want 1", p.Page)
	}
}

// TestFavoritesSurviveRestart toggles state over HTTP, then starts a new
// stack on the same database.
func TestFavoritesSurviveRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "carfinder.db")
	server, _ := startServer(t, dbPath)
	client := noRedirectClient()

	for _, target := range []string{"/favorites/c05", "/favorites/c02", "/favorites/c09", "/favorites/c09", "/theme"} {
		resp, err := client.PostForm(server.URL+target, url.Values{"return": {"/"}})
		if err != nil {
			t.Fatalf("POST %s: %v", target, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("POST %s: status %d", target, resp.StatusCode)
		}
	}

	server.Close()

	restarted, s := startServer(t, dbPath)

	var ids []string
	for _, l := range s.Favorites() {
		ids = append(ids, l.ID)
	}
	if strings.Join(ids, ",") != "c05,c02" {
		t.Errorf("favorites after restart = %v, want [c05 c02]", ids)
	}
	if !s.DarkMode() {
		t.Error("Expected dark mode to survive the restart")
	}

	resp, err := http.Get(restarted.URL + "/favorites")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /favorites: status %d", resp.StatusCode)
	}
}

func TestCorruptStateIsIgnored(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "carfinder.db")
	ctx := context.Background()
	logger := testutil.TestLogger(t)

	conf := &config.Config{Storage: config.StorageSQLite, DB: config.DBConfig{Source: dbPath, MaxOpenConns: 1}}
	cache, err := cli.OpenCache(ctx, conf, logger)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Write(ctx, storage.KeyWishlist, []byte("{broken")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Write(ctx, storage.KeyDarkMode, []byte("maybe")); err != nil {
		t.Fatal(err)
	}
	cache.Close()

	_, s := startServer(t, dbPath)
	if len(s.Favorites()) != 0 || s.DarkMode() {
		t.Error("Expected corrupt values to fall back to defaults")
	}
}

func countWhere(c *catalog.Catalog, keep func(catalog.Listing) bool) int {
	n := 0
	for _, l := range c.Listings() {
		if keep(l) {
			n++
		}
	}
	return n
}
