// Package currency renders amounts for display using locale grouping rules.
package currency

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/csg33k/payroll-roster/internal/domain"
)

const (
	DefaultSymbol = "$"
	DefaultLocale = "en-US"
)

// Formatter satisfies domain.AmountFormatter.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

func New(symbol, locale string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("currency: locale %q: %w", locale, err)
	}
	return &Formatter{symbol: symbol, printer: message.NewPrinter(tag)}, nil
}

// Default is the en-US dollar formatter.
func Default() *Formatter {
	f, _ := New(DefaultSymbol, DefaultLocale)
	return f
}

// Format renders c with two decimals and locale grouping, e.g. "$54,500.00";
// negative amounts get a leading minus: "-$500.00".
func (f *Formatter) Format(c domain.Cents) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return sign + f.symbol + f.printer.Sprintf("%.2f", c.Float())
}

// Number renders c like Format but without the currency symbol.
func (f *Formatter) Number(c domain.Cents) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return sign + f.printer.Sprintf("%.2f", c.Float())
}
