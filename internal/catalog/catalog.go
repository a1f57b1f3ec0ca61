package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/slices"
)

//go:embed data/listings.json
var seed []byte

// Catalog is the read-only set of listings loaded once at start.
type Catalog struct {
	listings []Listing
	byID     map[string]int
}

// New builds a catalog from listings. Ids must be unique.
func New(listings []Listing) (*Catalog, error) {
	c := &Catalog{
		listings: make([]Listing, len(listings)),
		byID:     make(map[string]int, len(listings)),
	}

	for i, l := range listings {
		if err := l.validate(); err != nil {
			return nil, err
		}
		if _, ok := c.byID[l.ID]; ok {
			return nil, fmt.Errorf("duplicate listing id %q", l.ID)
		}
		c.byID[l.ID] = i
		c.listings[i] = l
	}

	return c, nil
}

// Load decodes a JSON array of listings.
func Load(r io.Reader) (*Catalog, error) {
	var listings []Listing
	if err := json.NewDecoder(r).Decode(&listings); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return New(listings)
}

// LoadFile loads the catalog stored at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(seed))
}

// Listings returns a copy of every listing in catalog order.
func (c *Catalog) Listings() []Listing {
	return slices.Clone(c.listings)
}

func (c *Catalog) Get(id string) (Listing, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Listing{}, false
	}
	return c.listings[i], true
}

func (c *Catalog) Len() int {
	return len(c.listings)
}

// Brands returns the distinct brands sorted alphabetically.
func (c *Catalog) Brands() []string {
	brands := make([]string, 0, len(c.listings))
	for _, l := range c.listings {
		brands = append(brands, l.Brand)
	}

	slices.Sort(brands)
	return slices.Compact(brands)
}
