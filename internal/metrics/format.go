package metrics

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatAmount renders amount with the digit grouping of tag.
func FormatAmount(tag language.Tag, amount decimal.Decimal) string {
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(2)))
}
