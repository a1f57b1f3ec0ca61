package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GustavoCaso/carfinder/internal/export"
	"github.com/GustavoCaso/carfinder/internal/report"
)

func (router *router) favoritesHandler(w http.ResponseWriter, r *http.Request) {
	favorites := router.session.Favorites()

	router.renderPage(w, http.StatusOK, "pages/favorites.html", favoritesData{
		viewBase:  router.newViewBase(r),
		Favorites: favorites,
		Summary:   report.Generate("Wishlist", favorites, router.budget),
	})
}

func (router *router) exportFavoritesHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="wishlist.csv"`)

	if err := export.CSV(w, router.session.Favorites()); err != nil {
		router.logger.Error("Failed to export favorites", "error", err)
	}
}

func (router *router) toggleFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		router.logger.Error("Failed to parse form", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	added, err := router.session.ToggleFavorite(r.Context(), id)
	if isUnknownListing(err) {
		router.notFoundHandler(w, r)
		return
	}
	if err != nil {
		router.logger.Error("Failed to toggle favorite", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	router.logger.Info("Favorite toggled", "id", id, "added", added)

	redirectBack(w, r)
}

func (router *router) toggleThemeHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		router.logger.Error("Failed to parse form", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	dark := router.session.ToggleDarkMode(r.Context())
	router.logger.Info("Display mode toggled", "dark_mode", dark)

	redirectBack(w, r)
}
