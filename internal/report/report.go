// Package report summarizes a list of listings, typically the wishlist,
// grouped by brand and checked against an optional purchase budget.
package report

import (
	"cmp"
	"math"
	"slices"

	"github.com/GustavoCaso/carfinder/internal/catalog"
)

type BudgetStatus string

const (
	BudgetStatusUnder    BudgetStatus = "under"
	BudgetStatusNear     BudgetStatus = "near"
	BudgetStatusOver     BudgetStatus = "over"
	BudgetStatusNoBudget BudgetStatus = "no_budget"
)

const (
	budgetUnder       = 80
	budgetFull        = 100
	percentageOfTotal = 100
)

// BudgetInfo compares the cheapest listing against the budget for a single
// purchase.
type BudgetInfo struct {
	Amount         float64 // 0 when no budget is configured
	Affordable     int     // listings priced at or below Amount
	PercentageUsed float64 // cheapest price as a percentage of Amount
	Status         BudgetStatus
}

type Brand struct {
	Name              string
	Total             float64
	Listings          []catalog.Listing
	PercentageOfTotal float64
	AvgPrice          float64
	Cheapest          catalog.Listing
}

type Report struct {
	Title         string
	Count         int
	Total         float64
	AveragePrice  float64
	Cheapest      catalog.Listing
	MostExpensive catalog.Listing
	Brands        []Brand
	Budget        BudgetInfo
}

// Generate builds the summary of listings. budget is the most the buyer is
// willing to pay for one car; zero or less disables the budget check.
func Generate(title string, listings []catalog.Listing, budget float64) Report {
	report := Report{
		Title:  title,
		Count:  len(listings),
		Brands: []Brand{},
	}

	if len(listings) == 0 {
		report.Budget = calculateBudgetInfo(budget, listings)
		return report
	}

	brands := map[string]*Brand{}
	report.Cheapest = listings[0]
	report.MostExpensive = listings[0]

	for _, l := range listings {
		report.Total += l.Price

		if l.Price < report.Cheapest.Price {
			report.Cheapest = l
		}
		if l.Price > report.MostExpensive.Price {
			report.MostExpensive = l
		}

		addListingToBrand(brands, l)
	}

	report.AveragePrice = report.Total / float64(len(listings))

	for _, b := range brands {
		b.AvgPrice = b.Total / float64(len(b.Listings))
		b.PercentageOfTotal = percentage(b.Total, report.Total)
		report.Brands = append(report.Brands, *b)
	}

	slices.SortFunc(report.Brands, func(a, b Brand) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	report.Budget = calculateBudgetInfo(budget, listings)

	return report
}

func addListingToBrand(brands map[string]*Brand, l catalog.Listing) {
	b, ok := brands[l.Brand]
	if !ok {
		brands[l.Brand] = &Brand{
			Name:     l.Brand,
			Total:    l.Price,
			Listings: []catalog.Listing{l},
			Cheapest: l,
		}
		return
	}

	b.Total += l.Price
	b.Listings = append(b.Listings, l)
	if l.Price < b.Cheapest.Price {
		b.Cheapest = l
	}
}

func percentage(part, total float64) float64 {
	p := part * percentageOfTotal / total
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

func calculateBudgetInfo(budget float64, listings []catalog.Listing) BudgetInfo {
	if budget <= 0 {
		return BudgetInfo{Status: BudgetStatusNoBudget}
	}

	info := BudgetInfo{Amount: budget, Status: BudgetStatusUnder}
	if len(listings) == 0 {
		return info
	}

	cheapest := listings[0].Price
	for _, l := range listings {
		if l.Price <= budget {
			info.Affordable++
		}
		cheapest = min(cheapest, l.Price)
	}

	info.PercentageUsed = percentage(cheapest, budget)

	switch {
	case info.PercentageUsed < budgetUnder:
		info.Status = BudgetStatusUnder
	case info.PercentageUsed <= budgetFull:
		info.Status = BudgetStatusNear
	default:
		info.Status = BudgetStatusOver
	}

	return info
}
