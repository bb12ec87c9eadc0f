// Package money renders decimal amounts as localized currency strings.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Default locale and currency of the catalog.
const (
	DefaultLocale   = "en-IN"
	DefaultCurrency = "INR"
)

// Formatter formats amounts for one fixed locale and currency.
// It is safe for concurrent use.
type Formatter struct {
	locale         language.Tag
	unit           currency.Unit
	fractionDigits int32
	symbol         string
}

var defaultFormatter = MustNewFormatter(DefaultLocale, DefaultCurrency, 0)

// NewFormatter creates a Formatter. fractionDigits is the number of decimals
// printed; amounts are rounded half away from zero to that precision.
func NewFormatter(locale, code string, fractionDigits int32) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	if fractionDigits < 0 {
		return nil, fmt.Errorf("fraction digits must be non-negative, got %d", fractionDigits)
	}

	p := message.NewPrinter(tag)
	return &Formatter{
		locale:         tag,
		unit:           unit,
		fractionDigits: fractionDigits,
		symbol:         p.Sprint(currency.NarrowSymbol(unit)),
	}, nil
}

// MustNewFormatter is like NewFormatter but panics on error.
func MustNewFormatter(locale, code string, fractionDigits int32) *Formatter {
	f, err := NewFormatter(locale, code, fractionDigits)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders amount, e.g. "₹54,000" for the default formatter.
// Negative amounts get a leading minus before the symbol.
func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(f.fractionDigits)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	// message.Printer is not safe for concurrent use, so each call gets its own.
	p := message.NewPrinter(f.locale)
	digits := p.Sprint(number.Decimal(
		rounded.InexactFloat64(),
		number.MinFractionDigits(int(f.fractionDigits)),
		number.MaxFractionDigits(int(f.fractionDigits)),
	))
	return sign + f.symbol + digits
}

// Symbol returns the currency symbol used by the formatter.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Currency returns the ISO code of the formatter's currency.
func (f *Formatter) Currency() string {
	return f.unit.String()
}

// Format renders amount with the default catalog formatter.
func Format(amount decimal.Decimal) string {
	return defaultFormatter.Format(amount)
}
