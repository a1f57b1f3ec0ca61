package router

import (
	"net/http"

	"github.com/GustavoCaso/carfinder/internal/filter"
)

func (router *router) homeHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query, criteria, order := filter.Parse(params)
	page := filter.ParsePage(params.Get(filter.ParamPage))

	router.session.Apply(query, criteria, order, page)
	view := router.session.View()

	router.logger.Debug("Rendering results",
		"query", query,
		"filters_active", view.FiltersActive,
		"sort", order.String(),
		"page", view.Page.Number,
		"total_pages", view.Page.TotalPages,
		"filtered", view.Filtered(),
	)

	router.renderPage(w, http.StatusOK, "pages/index.html", newHomeData(router.newViewBase(r), view))
}

// resetFiltersHandler clears every filter but keeps the search text and the
// sort order.
func (router *router) resetFiltersHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		router.logger.Error("Failed to parse form", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	router.session.ResetCriteria()
	view := router.session.View()

	http.Redirect(w, r, homeURL(filter.Encode(view.Query, filter.Criteria{}, view.Order)), http.StatusSeeOther)
}
