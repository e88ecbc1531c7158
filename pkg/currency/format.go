// Package currency renders monetary amounts for display.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter prints amounts as "<code> <grouped digits>", e.g. "PKR 1,850".
type Formatter struct {
	code    string
	printer *message.Printer
}

func NewFormatter(code, locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{code: code, printer: message.NewPrinter(tag)}
}

func (f *Formatter) Format(amount decimal.Decimal) string {
	return f.code + " " + f.Number(amount)
}

// Number groups thousands per the locale and keeps at most two fraction digits.
func (f *Formatter) Number(amount decimal.Decimal) string {
	amount = amount.Round(2)
	if amount.IsInteger() {
		return f.printer.Sprint(number.Decimal(amount.IntPart()))
	}
	return f.printer.Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(2)))
}
