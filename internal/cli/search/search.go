package search

import (
	"context"
	"embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"text/template"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/cli"
	"github.com/GustavoCaso/carfinder/internal/config"
	"github.com/GustavoCaso/carfinder/internal/filter"
	"github.com/GustavoCaso/carfinder/internal/logger"
	"github.com/GustavoCaso/carfinder/internal/session"
	"github.com/GustavoCaso/carfinder/internal/util"
)

//go:embed templates/*
var content embed.FS

type searchCommand struct {
	out io.Writer

	query  string
	fields filter.Fields
	sort   string
	page   int
	json   bool
}

func NewCommand() cli.Command {
	return &searchCommand{out: os.Stdout}
}

func (c *searchCommand) Description() string {
	return "Search, filter and sort the catalog"
}

func (c *searchCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.query, "q", "", "text matched against brand and model")
	fs.StringVar(&c.fields.Brand, "brand", "", "exact brand")
	fs.Float64Var(&c.fields.MinPrice, "min", 0, "minimum price (0 means no bound)")
	fs.Float64Var(&c.fields.MaxPrice, "max", 0, "maximum price (0 means no bound)")
	fs.StringVar(&c.fields.FuelType, "fuel", "", "fuel type: Petrol, Diesel, Electric or Hybrid")
	fs.IntVar(&c.fields.Seating, "seating", 0, "exact seating capacity (0 means any)")
	fs.StringVar(&c.sort, "sort", string(filter.DefaultSortOrder), "price order: asc or desc")
	fs.IntVar(&c.page, "page", 1, "page number")
	fs.BoolVar(&c.json, "json", false, "print the page as JSON")
}

type result struct {
	View     session.View
	Currency string
}

func (c *searchCommand) Run(conf *config.Config, logger *logger.Logger) error {
	ctx := context.Background()

	s, cache, err := cli.NewSession(ctx, conf, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	return c.search(s, conf.Currency)
}

func (c *searchCommand) search(s *session.Session, currency string) error {
	if c.fields.FuelType != "" && !catalog.FuelType(c.fields.FuelType).Valid() {
		return fmt.Errorf("unknown fuel type %q", c.fields.FuelType)
	}

	s.SetQuery(c.query)
	s.SetCriteria(c.fields.Criteria())
	s.SetSortOrder(filter.ParseSortOrder(c.sort))
	s.SetPage(c.page)

	view := s.View()

	if c.json {
		encoder := json.NewEncoder(c.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(view.Listings())
	}

	if err := renderTemplate(c.out, "results.tmpl", result{View: view, Currency: currency}); err != nil {
		return fmt.Errorf("unable to render results: %w", err)
	}

	return nil
}

var templateFuncs = template.FuncMap{
	"formatPrice": util.FormatPrice,
	"colorOutput": util.ColorOutput,
	"pad": func(width int, s string) string {
		return fmt.Sprintf("%-*s", width, s)
	},
}

func renderTemplate(out io.Writer, templateName string, value any) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}

	t, err := template.New(templateName).Funcs(templateFuncs).Parse(string(tmpl))
	if err != nil {
		return err
	}

	return t.Execute(out, value)
}
