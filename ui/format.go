package ui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// formatCount renders a counter with thousands separators ("1,234,567").
func formatCount(v float64) string {
	return printer.Sprintf("%v", number.Decimal(int64(v)))
}

// formatRate renders a per-second rate with two decimals and thousands
// separators ("1,234.56").
func formatRate(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
