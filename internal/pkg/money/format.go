package money

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts as localized currency strings.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter creates a Formatter for the given locale and currency symbol.
func NewFormatter(tag language.Tag, symbol string) *Formatter {
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// NewBRLFormatter returns the storefront default: Brazilian Portuguese, Real.
func NewBRLFormatter() *Formatter {
	return NewFormatter(language.BrazilianPortuguese, "R$")
}

// Format renders e.g. "R$ 1.234,50". Negative amounts carry a leading minus sign.
func (f *Formatter) Format(m *Money) string {
	rounded := m.RoundCents()
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = Zero().Subtract(rounded)
	}
	return sign + f.symbol + " " + f.printer.Sprintf("%.2f", rounded.Float64())
}

// Installment renders an interest-free installment label, e.g. "6x de R$ 50,00 sem juros".
func (f *Formatter) Installment(count int, value *Money) string {
	return fmt.Sprintf("%dx de %s sem juros", count, f.Format(value))
}
