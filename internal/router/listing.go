package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (router *router) listingHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, ok := router.session.Listing(id)
	if !ok {
		router.logger.Warn("Listing not found", "id", id)
		router.notFoundHandler(w, r)
		return
	}

	router.renderPage(w, http.StatusOK, "pages/listing.html", listingData{
		viewBase: router.newViewBase(r),
		Listing:  listing,
		Favorite: router.session.IsFavorite(id),
		BackURL:  localPath(r.URL.Query().Get("return")),
	})
}
