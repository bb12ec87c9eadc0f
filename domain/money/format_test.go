package money

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat_Default(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{name: "zero", amount: decimal.Zero, want: "₹0"},
		{name: "hundreds", amount: decimal.NewFromInt(500), want: "₹500"},
		{name: "thousands", amount: decimal.NewFromInt(54000), want: "₹54,000"},
		{name: "rounds half up", amount: decimal.RequireFromString("999.5"), want: "₹1,000"},
		{name: "rounds down", amount: decimal.RequireFromString("9000.4"), want: "₹9,000"},
		{name: "negative", amount: decimal.NewFromInt(-5000), want: "-₹5,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.amount); got != tt.want {
				t.Errorf("Format(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormat_Deterministic(t *testing.T) {
	amount := decimal.RequireFromString("123456.78")
	first := Format(amount)
	for i := 0; i < 10; i++ {
		if got := Format(amount); got != first {
			t.Fatalf("Format() = %q on call %d, want %q", got, i, first)
		}
	}
}

func TestFormatter_FractionDigits(t *testing.T) {
	f, err := NewFormatter("en-US", "USD", 2)
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}

	got := f.Format(decimal.RequireFromString("1234.5"))
	if !strings.HasSuffix(got, "1,234.50") {
		t.Errorf("Format() = %q, want suffix %q", got, "1,234.50")
	}
	if !strings.HasPrefix(got, f.Symbol()) {
		t.Errorf("Format() = %q, want prefix %q", got, f.Symbol())
	}
	if f.Currency() != "USD" {
		t.Errorf("Currency() = %q, want USD", f.Currency())
	}
}

func TestNewFormatter_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		code   string
		digits int32
	}{
		{name: "bad locale", locale: "not a locale!", code: "INR"},
		{name: "bad currency", locale: "en-IN", code: "XYZ1"},
		{name: "negative digits", locale: "en-IN", code: "INR", digits: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFormatter(tt.locale, tt.code, tt.digits); err == nil {
				t.Error("NewFormatter() error = nil, want error")
			}
		})
	}
}
