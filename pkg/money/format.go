// Package money parses and formats currency amounts.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatUSD renders amount as en-US dollars, e.g. "$1,234.50" or "-$2.00".
func FormatUSD(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	whole, cents, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	// Grouping goes through the integer path, which is exact.
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + "$" + whole + "." + cents
	}
	p := message.NewPrinter(language.AmericanEnglish)
	return sign + "$" + p.Sprint(number.Decimal(n)) + "." + cents
}
