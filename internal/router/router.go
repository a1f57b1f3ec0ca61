// Package router serves the catalog browser over HTTP. Every request reads or
// changes the single session it was built with.
package router

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GustavoCaso/carfinder/internal/logger"
	"github.com/GustavoCaso/carfinder/internal/session"
)

//go:embed static
var static embed.FS
var staticFS, _ = fs.Sub(static, "static")

// Options tune how listings are presented.
type Options struct {
	Currency string
	// Budget marks wishlist cars the buyer can afford. 0 disables it.
	Budget float64
}

type router struct {
	session  *session.Session
	logger   *logger.Logger
	currency string
	budget   float64
	reload   bool

	mu        sync.RWMutex
	templates templates
}

//nolint:revive // We return the private router struct to allow testing some internal functions
func New(s *session.Session, opts Options, logger *logger.Logger) (http.Handler, *router) {
	allowEmbedding := os.Getenv("CARFINDER_ALLOW_EMBEDDING") == "true"

	router := &router{
		session:  s,
		logger:   logger,
		currency: opts.Currency,
		budget:   opts.Budget,
		reload:   os.Getenv("LIVERELOAD") == "true",
	}

	if err := router.parseTemplates(); err != nil {
		logger.Fatal("Error parsing templates", "error", err.Error())
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", router.homeHandler)
	r.Get("/listings/{id}", router.listingHandler)
	r.Get("/favorites", router.favoritesHandler)
	r.Get("/favorites.csv", router.exportFavoritesHandler)
	r.Post("/favorites/{id}", router.toggleFavoriteHandler)
	r.Post("/theme", router.toggleThemeHandler)
	r.Post("/filters/reset", router.resetFiltersHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SetHeader("Content-Type", "application/json"))
		r.Get("/listings", router.apiListingsHandler)
		r.Get("/favorites", router.apiFavoritesHandler)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.NotFound(router.notFoundHandler)

	var handler http.Handler = r
	handler = csrfProtectionMiddleware(logger, handler)
	handler = loggingMiddleware(logger, handler)
	if router.reload {
		handler = liveReloadMiddleware(router, handler)
	}
	if !allowEmbedding {
		handler = xFrameDenyHeaderMiddleware(handler)
	}

	return handler, router
}

func (router *router) renderPage(w http.ResponseWriter, status int, name string, data any) {
	// A failing template must still be able to answer with a 500.
	var buf bytes.Buffer
	if err := router.render(&buf, name, data); err != nil {
		router.logger.Error("Failed to render template", "template", name, "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// localPath returns target when it is a path on this server, "/" otherwise.
func localPath(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

// redirectBack sends the browser to the form's "return" field.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, localPath(r.FormValue("return")), http.StatusSeeOther)
}

func (router *router) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	router.renderPage(w, http.StatusNotFound, "pages/not_found.html", notFoundData{
		viewBase: router.newViewBase(r),
		Path:     r.URL.Path,
	})
}

func isUnknownListing(err error) bool {
	var unknown *session.UnknownListingError
	return errors.As(err, &unknown)
}
