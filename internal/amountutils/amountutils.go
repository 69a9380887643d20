// Package amountutils provides amount parsing and display formatting for
// point-of-sale data.
//
// Parsing is deliberately soft-failing: amounts and quantities are not part
// of any grouping key, so an unparsable value coerces to zero instead of
// aborting the load. Display formatting rounds to whole units with locale
// grouping; aggregation always runs on the unrounded decimals.
package amountutils

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Japanese)

// ParseAmount parses a raw amount cell into a decimal value.
// Thousands-separator commas are stripped and surrounding whitespace is
// trimmed. Empty or unparsable input yields zero; this function never fails.
// Negative values are preserved (returns and refunds are valid data).
func ParseAmount(v string) decimal.Decimal {
	s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatGrouped renders a decimal rounded to the nearest whole unit with
// locale-aware digit grouping, e.g. 1234567.4 -> "1,234,567".
func FormatGrouped(d decimal.Decimal) string {
	return printer.Sprintf("%d", d.Round(0).IntPart())
}

// FormatCount renders an integer count with locale-aware digit grouping.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
