// Package format renders currency and percentages for human-readable output.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return sign(amount) + "$" + printer.Sprintf("%.2f", math.Abs(amount))
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return sign(amount) + printer.Sprintf("%.2f", math.Abs(amount))
}

// Compact abbreviates large amounts for summaries: "$1.5K", "$250K",
// "$2.3M". Amounts under a thousand are whole dollars.
func Compact(amount float64) string {
	abs := math.Abs(amount)
	s := sign(amount)

	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", s, abs/1_000_000)
	case abs >= 100_000:
		return fmt.Sprintf("%s$%.0fK", s, abs/1_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.1fK", s, abs/1_000)
	}
	return s + "$" + printer.Sprintf("%.0f", abs)
}

// Percent formats a whole percentage with one decimal (3.5 -> "3.5%").
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// Year formats an optional break-even year, "N/A" when absent.
func Year(year *int) string {
	if year == nil {
		return "N/A"
	}
	if *year == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", *year)
}

// sign returns "-" for amounts that are negative after rounding to cents.
func sign(amount float64) string {
	if math.Round(amount*100) < 0 {
		return "-"
	}
	return ""
}
