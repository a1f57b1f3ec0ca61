package util

import "github.com/fatih/color"

// Color names accepted by ColorOutput. Unknown names are ignored.
var colorsOptions = map[string]color.Attribute{
	"red":       color.FgHiRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"cyan":      color.FgCyan,
	"bold":      color.Bold,
	"faint":     color.Faint,
	"underline": color.Underline,
}

// ColorOutput wraps text in the terminal escape codes for the named colors.
// It returns text untouched when color output is disabled, for example when
// stdout is not a terminal or NO_COLOR is set.
func ColorOutput(text string, colorOptions ...string) string {
	attributes := make([]color.Attribute, 0, len(colorOptions))
	for _, option := range colorOptions {
		if o, ok := colorsOptions[option]; ok {
			attributes = append(attributes, o)
		}
	}
	return color.New(attributes...).Sprint(text)
}
