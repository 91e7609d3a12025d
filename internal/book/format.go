package book

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders an amount the way en-US formats currency, e.g. $1,234.50.
func FormatUSD(amount float64) string {
	if amount < 0 {
		return "-" + usPrinter.Sprintf("$%.2f", -amount)
	}
	return usPrinter.Sprintf("$%.2f", amount)
}
