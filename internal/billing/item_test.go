package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"gstinvoice/m/domain"
	"gstinvoice/m/internal/billing"
)

func TestParseNumberOr(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
		{"12abc", "0"},
		{"1,000", "0"},
		{"12", "12"},
		{" 12.50 ", "12.5"},
		{"-3", "-3"},
		{"1e20", "100000000000000000000"},
		{"999999999999999999999", "999999999999999999999"},
		{"1e21", "0"},
		{"-1e21", "0"},
		{"1e2000000000", "0"},
		{"0e2000000000", "0"},
		{"1e-2000000000", "0"},
		{"0.000000000000000001", "0.000000000000000001"},
		{"0.0000000000000000001", "0"},
	}
	for _, tt := range tests {
		if got := billing.ParseNumberOr(tt.value, decimal.Zero); !got.Equal(dec(tt.want)) {
			t.Errorf("ParseNumberOr(%q) = %s, want %s", tt.value, got, tt.want)
		}
	}

	if got := billing.ParseNumberOr("x", dec("7")); !got.Equal(dec("7")) {
		t.Errorf("fallback not returned, got %s", got)
	}
}

func TestCheckCatalogRates(t *testing.T) {
	tests := []struct {
		gst, rate string
		want      error
	}{
		{"18", "1650", nil},
		{"0", "0", nil},
		{"100", "1", nil},
		{"100.01", "1", billing.ErrGSTRateRange},
		{"-1", "1", billing.ErrGSTRateRange},
		{"18", "-0.5", billing.ErrNegativeRate},
	}
	for _, tt := range tests {
		if got := billing.CheckCatalogRates(dec(tt.gst), dec(tt.rate)); got != tt.want {
			t.Errorf("CheckCatalogRates(%s, %s) = %v, want %v", tt.gst, tt.rate, got, tt.want)
		}
	}
}

func TestNewItem(t *testing.T) {
	tests := []struct {
		name       string
		qty        string
		rate       string
		gst        string
		amount     string
		rateIncTax string
	}{
		{"regular row", "4", "950", "5", "3800", "997.5"},
		{"fractional quantity", "2.5", "100", "18", "250", "118"},
		{"blank quantity", "", "950", "5", "0", "997.5"},
		{"garbage rate", "3", "n/a", "5", "0", "0"},
		{"no gst", "2", "10.25", "0", "20.5", "10.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := billing.NewItem("LPG 14.2kg", "27111900", tt.qty, tt.rate, dec(tt.gst))
			if !item.Amount.Equal(dec(tt.amount)) {
				t.Errorf("amount = %s, want %s", item.Amount, tt.amount)
			}
			if !item.RateIncTax.Equal(dec(tt.rateIncTax)) {
				t.Errorf("rate inc tax = %s, want %s", item.RateIncTax, tt.rateIncTax)
			}
			if item.HSNSAC != "27111900" {
				t.Errorf("hsn = %q", item.HSNSAC)
			}
		})
	}
}

func TestRecompute(t *testing.T) {
	inv := domain.Invoice{
		Items: []domain.InvoiceItem{
			billing.NewItem("Cylinder 19kg", "27111900", "2", "499.70", dec("5")),
			billing.NewItem("Cylinder 14.2kg", "27111900", "0", "900", dec("5")),
		},
	}
	inv.CGSTRate, inv.SGSTRate = billing.DefaultRates(inv.Items)
	billing.Recompute(&inv)

	if !inv.TaxableAmount.Equal(dec("999.40")) {
		t.Fatalf("taxable = %s", inv.TaxableAmount)
	}
	if !inv.TotalAmount.Equal(dec("1049")) || !inv.RoundedOff.Equal(dec("-0.37")) {
		t.Errorf("total = %s, rounded off = %s", inv.TotalAmount, inv.RoundedOff)
	}
	if inv.AmountInWords != "INR One Thousand Forty Nine Only" {
		t.Errorf("words = %q", inv.AmountInWords)
	}
	if inv.Items[1].Position != 2 {
		t.Errorf("position = %d", inv.Items[1].Position)
	}

	// editing a row and recomputing moves every derived value
	inv.Items[1].Quantity = dec("1")
	billing.Recompute(&inv)
	if !inv.TaxableAmount.Equal(dec("1899.40")) {
		t.Errorf("taxable after edit = %s", inv.TaxableAmount)
	}
	if !inv.Items[1].Amount.Equal(dec("900")) {
		t.Errorf("row amount after edit = %s", inv.Items[1].Amount)
	}
	if !inv.TotalAmount.Equal(dec("1994")) {
		t.Errorf("total after edit = %s", inv.TotalAmount)
	}

	// removing the last row
	inv.Items = inv.Items[:1]
	billing.Recompute(&inv)
	if !inv.TotalAmount.Equal(dec("1049")) {
		t.Errorf("total after delete = %s", inv.TotalAmount)
	}
}

func TestDefaultRates(t *testing.T) {
	items := []domain.InvoiceItem{
		{GSTRate: decimal.Zero},
		{GSTRate: dec("18")},
	}
	cgst, sgst := billing.DefaultRates(items)
	if !cgst.Equal(dec("9")) || !sgst.Equal(dec("9")) {
		t.Errorf("DefaultRates = %s, %s", cgst, sgst)
	}
	cgst, _ = billing.DefaultRates(nil)
	if !cgst.IsZero() {
		t.Errorf("empty rows gave %s", cgst)
	}
}
