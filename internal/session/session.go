// Package session owns the browsing state of one user: search inputs, the
// current page, favorites and the display mode. It is the only place where
// that state changes, and it persists favorites and the display mode through
// a storage.Cache on every change.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/favorites"
	"github.com/GustavoCaso/carfinder/internal/filter"
	"github.com/GustavoCaso/carfinder/internal/logger"
	"github.com/GustavoCaso/carfinder/internal/pagination"
	"github.com/GustavoCaso/carfinder/internal/selection"
	"github.com/GustavoCaso/carfinder/internal/storage"
)

// UnknownListingError is returned when an id is not in the catalog.
type UnknownListingError struct {
	ID string
}

func (e *UnknownListingError) Error() string {
	return fmt.Sprintf("listing %q not found", e.ID)
}

type Session struct {
	mu sync.Mutex

	catalog  *catalog.Catalog
	cache    storage.Cache
	logger   *logger.Logger
	pageSize int

	query    string
	criteria filter.Criteria
	order    filter.SortOrder
	page     int

	favorites *favorites.Set
	darkMode  bool
}

// New creates a session over c and seeds favorites and the display mode from
// cache. Unreadable values fall back to an empty set and light mode.
func New(ctx context.Context, c *catalog.Catalog, cache storage.Cache, pageSize int, l *logger.Logger) *Session {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}

	s := &Session{
		catalog:  c,
		cache:    cache,
		logger:   l.With("component", "session"),
		pageSize: pageSize,
		order:    filter.DefaultSortOrder,
		page:     1,
	}

	set, err := favorites.Load(ctx, cache)
	if err != nil {
		s.logger.Warn("Ignoring stored favorites", "key", storage.KeyWishlist, "error", err)
	}
	s.favorites = set

	s.darkMode = s.loadDarkMode(ctx)

	s.logger.Debug("Session started", "listings", c.Len(), "favorites", set.Count(), "dark_mode", s.darkMode)

	return s
}

func (s *Session) loadDarkMode(ctx context.Context) bool {
	var enabled bool
	err := storage.ReadJSON(ctx, s.cache, storage.KeyDarkMode, &enabled)

	var notFound *storage.NotFoundError
	if errors.As(err, &notFound) {
		return false
	}
	if err != nil {
		s.logger.Warn("Ignoring stored display mode", "key", storage.KeyDarkMode, "error", err)
		return false
	}
	return enabled
}

func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
	s.page = 1
}

func (s *Session) SetCriteria(c filter.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria = c.Normalize()
	s.page = 1
}

// ResetCriteria clears every filter. The query and sort order are kept.
func (s *Session) ResetCriteria() {
	s.SetCriteria(filter.Criteria{})
}

func (s *Session) SetSortOrder(order filter.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = order
	s.page = 1
}

// Apply sets all search inputs at once. The requested page is honoured only
// when query, criteria and order are unchanged; otherwise the session
// returns to page 1.
func (s *Session) Apply(query string, c filter.Criteria, order filter.SortOrder, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c = c.Normalize()
	changed := query != s.query || c.Fields() != s.criteria.Fields() || order != s.order

	s.query = query
	s.criteria = c
	s.order = order

	if changed || page < 1 {
		s.page = 1
		return
	}
	s.page = page
}

// SetPage jumps to page n. Values below 1 select the first page.
func (s *Session) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = max(1, n)
}

func (s *Session) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = s.paginate().Next()
}

func (s *Session) PreviousPage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = s.paginate().Previous()
}

// ToggleFavorite adds or removes the listing with id and reports whether it
// was added. A stored favorite is removed even when the catalog no longer has
// it; only ids that are neither stored nor in the catalog are unknown. The
// in-memory set always changes; a failed write is logged.
func (s *Session) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.favorites.Get(id)
	if !ok {
		listing, ok = s.catalog.Get(id)
	}
	if !ok {
		return false, &UnknownListingError{ID: id}
	}

	added := s.favorites.Toggle(listing)
	if err := favorites.Save(ctx, s.cache, s.favorites); err != nil {
		s.logger.Warn("Failed to persist favorites", "key", storage.KeyWishlist, "error", err)
	}

	s.logger.Debug("Toggled favorite", "id", id, "added", added, "count", s.favorites.Count())

	return added, nil
}

// ToggleDarkMode flips the display mode and returns the new value.
func (s *Session) ToggleDarkMode(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.darkMode = !s.darkMode
	if err := storage.WriteJSON(ctx, s.cache, storage.KeyDarkMode, s.darkMode); err != nil {
		s.logger.Warn("Failed to persist display mode", "key", storage.KeyDarkMode, "error", err)
	}

	return s.darkMode
}

func (s *Session) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.favorites.Contains(id)
}

func (s *Session) Favorites() []catalog.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.favorites.Listings()
}

func (s *Session) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.darkMode
}

// Listing looks up id in the catalog, then in the stored favorites.
func (s *Session) Listing(id string) (catalog.Listing, bool) {
	if l, ok := s.catalog.Get(id); ok {
		return l, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.favorites.Get(id)
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// paginate runs the selection pipeline for the current inputs. Callers hold mu.
func (s *Session) paginate() pagination.Page {
	results := selection.Select(s.catalog.Listings(), s.query, s.criteria, s.order)
	return pagination.Paginate(results, s.pageSize, s.page)
}
