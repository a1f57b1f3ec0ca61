package router

import (
	"encoding/json"
	"net/http"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/filter"
)

type listingsResponse struct {
	Query      string            `json:"query"`
	Filters    filter.Fields     `json:"filters"`
	Sort       filter.SortOrder  `json:"sort"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Filtered   int               `json:"filtered"`
	Listings   []catalog.Listing `json:"listings"`
}

// apiListingsHandler answers with the page selected by the query string. It
// shares the session with the HTML pages.
func (router *router) apiListingsHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query, criteria, order := filter.Parse(params)

	router.session.Apply(query, criteria, order, filter.ParsePage(params.Get(filter.ParamPage)))
	view := router.session.View()

	router.writeJSON(w, listingsResponse{
		Query:      view.Query,
		Filters:    view.Filters,
		Sort:       view.Order,
		Page:       view.Page.Number,
		TotalPages: view.Page.TotalPages,
		Filtered:   view.Filtered(),
		Listings:   view.Listings(),
	})
}

func (router *router) apiFavoritesHandler(w http.ResponseWriter, _ *http.Request) {
	router.writeJSON(w, router.session.Favorites())
}

func (router *router) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		router.logger.Error("Failed to encode response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Write(data)
}
