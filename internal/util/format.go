package util

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders a price with thousands separators and the currency glyph
// as prefix, e.g. "₹1,449,000". Fractions are rounded to whole units.
func FormatPrice(value float64, currency string) string {
	return currency + FormatNumber(value)
}

// FormatNumber renders value rounded to a whole number with thousands separators.
func FormatNumber(value float64) string {
	return printer.Sprintf("%d", int64(math.Round(value)))
}
