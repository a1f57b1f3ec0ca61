package session

import (
	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/filter"
	"github.com/GustavoCaso/carfinder/internal/pagination"
)

// View is a snapshot of everything the presentation needs. Counts and
// indicators are derived from the session state when the view is built.
type View struct {
	Query   string
	Filters filter.Fields
	Order   filter.SortOrder

	Page pagination.Page

	// CatalogSize is the number of listings before filtering.
	CatalogSize   int
	Brands        []string
	FiltersActive bool

	Favorites      []catalog.Listing
	FavoritesCount int
	favoriteIDs    map[string]bool

	DarkMode bool
}

// Listings is the visible page.
func (v View) Listings() []catalog.Listing {
	return v.Page.Visible
}

// Filtered is the number of listings matching the current inputs.
func (v View) Filtered() int {
	return v.Page.Total
}

func (v View) IsFavorite(id string) bool {
	return v.favoriteIDs[id]
}

// Paginated reports whether page controls are needed.
func (v View) Paginated() bool {
	return v.Page.TotalPages > 1
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	favoriteIDs := make(map[string]bool, s.favorites.Count())
	for _, id := range s.favorites.IDs() {
		favoriteIDs[id] = true
	}

	return View{
		Query:          s.query,
		Filters:        s.criteria.Fields(),
		Order:          s.order,
		Page:           s.paginate(),
		CatalogSize:    s.catalog.Len(),
		Brands:         s.catalog.Brands(),
		FiltersActive:  s.criteria.Active(),
		Favorites:      s.favorites.Listings(),
		FavoritesCount: s.favorites.Count(),
		favoriteIDs:    favoriteIDs,
		DarkMode:       s.darkMode,
	}
}
