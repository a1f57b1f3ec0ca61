package router

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/util"
)

//go:embed templates
var templatesFS embed.FS

var layoutFiles = []string{
	"layout.html",
	"partials/nav.html",
	"partials/card.html",
}

// pages maps each renderable page to the files parsed on top of the layout.
var pages = map[string][]string{
	"pages/index.html": {
		"pages/index.html",
		"partials/filters.html",
		"partials/pagination.html",
	},
	"pages/listing.html": {
		"pages/listing.html",
	},
	"pages/favorites.html": {
		"pages/favorites.html",
	},
	"pages/not_found.html": {
		"pages/not_found.html",
	},
}

type templates map[string]*template.Template

func localFSDirectory() (fs.FS, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to locate the templates directory")
	}

	return os.DirFS(filepath.Join(filepath.Dir(filename), "templates")), nil
}

func embeddedFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

func templateFuncs(currency string) template.FuncMap {
	return template.FuncMap{
		"formatPrice": func(value float64) string {
			return util.FormatPrice(value, currency)
		},
		"formatNumber": util.FormatNumber,
		// formatAmount renders a form value. Zero means unset and renders empty.
		"formatAmount": func(value float64) string {
			if value == 0 {
				return ""
			}
			return strconv.FormatFloat(value, 'f', -1, 64)
		},
		"formatPercent": func(value float64) string {
			return strconv.FormatFloat(value, 'f', 0, 64) + "%"
		},
		"card": func(l catalog.Listing, favorite bool, returnURL string) cardView {
			return cardView{Listing: l, Favorite: favorite, ReturnURL: returnURL}
		},
	}
}

type cardView struct {
	Listing   catalog.Listing
	Favorite  bool
	ReturnURL string
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap) (templates, error) {
	base, err := template.New("layout").Funcs(funcs).ParseFS(fsys, layoutFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	parsed := make(templates, len(pages))
	for name, files := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}

		t, err := clone.ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		parsed[name] = t
	}

	return parsed, nil
}

func (t templates) Render(w io.Writer, name string, data any) error {
	tmpl, ok := t[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	return tmpl.ExecuteTemplate(w, "layout", data)
}

func (router *router) parseTemplates() error {
	fsys := embeddedFS()
	if router.reload {
		local, err := localFSDirectory()
		if err != nil {
			router.logger.Warn("Defaulting to embedded templates", "error", err.Error())
		} else {
			fsys = local
		}
	}

	parsed, err := parseTemplates(fsys, templateFuncs(router.currency))
	if err != nil {
		return err
	}

	router.mu.Lock()
	router.templates = parsed
	router.mu.Unlock()

	return nil
}

func (router *router) render(w io.Writer, name string, data any) error {
	router.mu.RLock()
	t := router.templates
	router.mu.RUnlock()

	return t.Render(w, name, data)
}
