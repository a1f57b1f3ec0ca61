// Package favorites keeps the user's wishlist: an insertion-ordered set of
// listings, unique by id, persisted as a whole under storage.KeyWishlist.
package favorites

import (
	"context"
	"errors"

	"golang.org/x/exp/slices"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/storage"
)

// Toggle removes the listing with l's id from listings, or appends l when no
// such listing is present. listings is not modified.
func Toggle(listings []catalog.Listing, l catalog.Listing) []catalog.Listing {
	i := index(listings, l.ID)
	if i >= 0 {
		return slices.Delete(slices.Clone(listings), i, i+1)
	}

	out := make([]catalog.Listing, len(listings), len(listings)+1)
	copy(out, listings)
	return append(out, l)
}

func index(listings []catalog.Listing, id string) int {
	return slices.IndexFunc(listings, func(l catalog.Listing) bool {
		return l.ID == id
	})
}

type Set struct {
	listings []catalog.Listing
}

// NewSet builds a set from listings, keeping the first listing of each id.
func NewSet(listings ...catalog.Listing) *Set {
	s := &Set{listings: make([]catalog.Listing, 0, len(listings))}
	for _, l := range listings {
		if !s.Contains(l.ID) {
			s.listings = append(s.listings, l)
		}
	}
	return s
}

// Toggle adds l when absent, removes it otherwise, and reports whether it was added.
func (s *Set) Toggle(l catalog.Listing) bool {
	s.listings = Toggle(s.listings, l)
	return s.Contains(l.ID)
}

func (s *Set) Contains(id string) bool {
	return index(s.listings, id) >= 0
}

// Get returns the stored listing with id.
func (s *Set) Get(id string) (catalog.Listing, bool) {
	i := index(s.listings, id)
	if i < 0 {
		return catalog.Listing{}, false
	}
	return s.listings[i], true
}

func (s *Set) Count() int {
	return len(s.listings)
}

// Listings returns the favorites in the order they were added.
func (s *Set) Listings() []catalog.Listing {
	return slices.Clone(s.listings)
}

func (s *Set) IDs() []string {
	ids := make([]string, len(s.listings))
	for i, l := range s.listings {
		ids[i] = l.ID
	}
	return ids
}

// Load reads the persisted wishlist. It always returns a usable set: when the
// key is absent or its value is unreadable the set is empty. The error is nil
// for an absent key and describes the problem otherwise.
func Load(ctx context.Context, cache storage.Cache) (*Set, error) {
	var listings []catalog.Listing
	err := storage.ReadJSON(ctx, cache, storage.KeyWishlist, &listings)

	var notFound *storage.NotFoundError
	if errors.As(err, &notFound) {
		return NewSet(), nil
	}
	if err != nil {
		return NewSet(), err
	}

	return NewSet(listings...), nil
}

// Save writes the full set, replacing any previous value.
func Save(ctx context.Context, cache storage.Cache, s *Set) error {
	return storage.WriteJSON(ctx, cache, storage.KeyWishlist, s.listings)
}
