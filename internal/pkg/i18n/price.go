// Package i18n renders monetary values the way the shop's locale writes them.
package i18n

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormatter formats prices for a single locale. Pricing code treats it
// as an external collaborator: products whose type forbids showing a price
// bypass it entirely.
type PriceFormatter struct {
	printer *message.Printer
}

func NewPriceFormatter(tag language.Tag) *PriceFormatter {
	return &PriceFormatter{printer: message.NewPrinter(tag)}
}

// Format renders a monetary value with the locale's digit separators,
// e.g. "$200.00" for English, "$200,00" for Spanish.
func (f *PriceFormatter) Format(v decimal.Decimal) string {
	amount, _ := v.Float64()
	return f.printer.Sprintf("$%.2f", amount)
}

// Locale parses a BCP-47 tag, falling back to English for unknown values.
func Locale(code string) language.Tag {
	tag, err := language.Parse(code)
	if err != nil {
		return language.English
	}
	return tag
}
