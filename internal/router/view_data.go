package router

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/filter"
	"github.com/GustavoCaso/carfinder/internal/report"
	"github.com/GustavoCaso/carfinder/internal/session"
)

type viewBase struct {
	DarkMode       bool
	FavoritesCount int
	// CurrentURL is where forms on the page send the browser back to.
	CurrentURL string
}

func (router *router) newViewBase(r *http.Request) viewBase {
	return viewBase{
		DarkMode:       router.session.DarkMode(),
		FavoritesCount: len(router.session.Favorites()),
		CurrentURL:     r.URL.RequestURI(),
	}
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

type homeData struct {
	viewBase
	View session.View

	FuelTypes      []catalog.FuelType
	SeatingOptions []int

	PreviousURL   string
	NextURL       string
	PageLinks     []pageLink
	SortToggleURL string
}

// searchURL links to the home page with the view's inputs and the given page
// and sort order.
func searchURL(v session.View, order filter.SortOrder, page int) string {
	params := filter.Encode(v.Query, v.Filters.Criteria(), order)
	if page > 1 {
		params.Set(filter.ParamPage, strconv.Itoa(page))
	}
	return homeURL(params)
}

func homeURL(params url.Values) string {
	if len(params) == 0 {
		return "/"
	}
	return "/?" + params.Encode()
}

func newHomeData(base viewBase, v session.View) homeData {
	links := make([]pageLink, 0, v.Page.TotalPages)
	for _, n := range v.Page.Numbers() {
		links = append(links, pageLink{
			Number:  n,
			URL:     searchURL(v, v.Order, n),
			Current: n == v.Page.Number,
		})
	}

	base.FavoritesCount = v.FavoritesCount
	base.DarkMode = v.DarkMode

	return homeData{
		viewBase:       base,
		View:           v,
		FuelTypes:      catalog.FuelTypes,
		SeatingOptions: filter.SeatingOptions,
		PreviousURL:    searchURL(v, v.Order, v.Page.Previous()),
		NextURL:        searchURL(v, v.Order, v.Page.Next()),
		PageLinks:      links,
		SortToggleURL:  searchURL(v, v.Order.Toggle(), 1),
	}
}

type listingData struct {
	viewBase
	Listing  catalog.Listing
	Favorite bool
	// BackURL returns to the results the listing was opened from.
	BackURL string
}

type favoritesData struct {
	viewBase
	Favorites []catalog.Listing
	Summary   report.Report
}

type notFoundData struct {
	viewBase
	Path string
}
