// Package format renders numeric figures as display strings. All functions are
// pure and never modify their input.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/mathutil"
)

var printer = message.NewPrinter(language.English)

// Currency returns a whole-dollar string with thousands separators (e.g., "-$1,235").
func Currency(amount float64) string {
	rounded := math.Round(amount)
	if rounded == 0 {
		return "$0"
	}
	formatted := printer.Sprintf("%.0f", math.Abs(rounded))
	if rounded < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent returns an integer percentage with a trailing sign (e.g., "153%").
func Percent(value float64) string {
	return printer.Sprintf("%.0f", zeroSign(value, 0)) + "%"
}

// Hours returns a one-decimal hour figure with its unit (e.g., "415.7 hrs").
func Hours(value float64) string {
	return printer.Sprintf("%.1f", zeroSign(value, 1)) + " hrs"
}

// Months returns a one-decimal month count (e.g., "6.0 mo").
func Months(value float64) string {
	return printer.Sprintf("%.1f", zeroSign(value, 1)) + " mo"
}

// Count returns a grouped count with the requested number of decimals.
func Count(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), zeroSign(value, decimals))
}

// Optional renders value with render when applicable, otherwise the
// not-applicable sentinel.
func Optional(value float64, applicable bool, render func(float64) string) string {
	if !applicable {
		return constants.NotApplicable
	}
	return render(value)
}

// zeroSign keeps values that round to zero from printing as "-0".
func zeroSign(value float64, decimals int) float64 {
	if mathutil.Round(value, decimals) == 0 {
		return 0
	}
	return value
}
