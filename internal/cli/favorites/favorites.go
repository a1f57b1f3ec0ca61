package favorites

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GustavoCaso/carfinder/internal/catalog"
	"github.com/GustavoCaso/carfinder/internal/cli"
	"github.com/GustavoCaso/carfinder/internal/config"
	"github.com/GustavoCaso/carfinder/internal/export"
	"github.com/GustavoCaso/carfinder/internal/logger"
	"github.com/GustavoCaso/carfinder/internal/report"
	"github.com/GustavoCaso/carfinder/internal/util"
)

type favoritesCommand struct {
	out     io.Writer
	json    bool
	csv     bool
	summary bool
	budget  float64
}

func NewCommand() cli.Command {
	return &favoritesCommand{out: os.Stdout}
}

func (c *favoritesCommand) Description() string {
	return "List the wishlist in the order listings were added"
}

func (c *favoritesCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.json, "json", false, "print the wishlist as JSON")
	fs.BoolVar(&c.csv, "csv", false, "print the wishlist as CSV")
	fs.BoolVar(&c.summary, "summary", false, "print totals per brand after the wishlist")
}

func (c *favoritesCommand) Run(conf *config.Config, logger *logger.Logger) error {
	s, cache, err := cli.NewSession(context.Background(), conf, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	c.budget = conf.Budget
	return c.print(s.Favorites(), conf.Currency)
}

func (c *favoritesCommand) print(listings []catalog.Listing, currency string) error {
	if c.csv {
		return export.CSV(c.out, listings)
	}

	if c.json {
		encoder := json.NewEncoder(c.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(listings)
	}

	if len(listings) == 0 {
		fmt.Fprintln(c.out, util.ColorOutput("Your wishlist is empty.", "faint"))
		return nil
	}

	fmt.Fprintf(c.out, "Wishlist (%d)\n", len(listings))
	for _, l := range listings {
		fmt.Fprintf(c.out, "%-4s %s %s\n", l.ID, l.Name(), util.ColorOutput(util.FormatPrice(l.Price, currency), "green"))
	}

	if c.summary {
		c.printSummary(report.Generate("Wishlist", listings, c.budget), currency)
	}

	return nil
}

var budgetColors = map[report.BudgetStatus]string{
	report.BudgetStatusUnder: "green",
	report.BudgetStatusNear:  "yellow",
	report.BudgetStatusOver:  "red",
}

func (c *favoritesCommand) printSummary(r report.Report, currency string) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Total %s, average %s\n", util.FormatPrice(r.Total, currency), util.FormatPrice(r.AveragePrice, currency))

	for _, b := range r.Brands {
		fmt.Fprintf(c.out, "%-16s %d %s (%.0f%%)\n", b.Name, len(b.Listings), util.FormatPrice(b.Total, currency), b.PercentageOfTotal)
	}

	if r.Budget.Status == report.BudgetStatusNoBudget {
		return
	}

	line := fmt.Sprintf("%d of %d within %s", r.Budget.Affordable, r.Count, util.FormatPrice(r.Budget.Amount, currency))
	fmt.Fprintln(c.out, util.ColorOutput(line, budgetColors[r.Budget.Status]))
}
