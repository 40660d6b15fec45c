package billing_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"gstinvoice/m/internal/billing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTaxes(t *testing.T) {
	tests := []struct {
		name       string
		taxable    string
		cgstRate   string
		sgstRate   string
		cgst       string
		sgst       string
		total      string
		roundedOff string
	}{
		{
			name:    "whole rupees need no rounding",
			taxable: "1000", cgstRate: "2.5", sgstRate: "2.5",
			cgst: "25", sgst: "25", total: "1050", roundedOff: "0",
		},
		{
			name:    "rounds down",
			taxable: "999.40", cgstRate: "2.5", sgstRate: "2.5",
			cgst: "24.985", sgst: "24.985", total: "1049", roundedOff: "-0.37",
		},
		{
			name:    "rounds up",
			taxable: "999.90", cgstRate: "9", sgstRate: "9",
			cgst: "89.991", sgst: "89.991", total: "1180", roundedOff: "0.118",
		},
		{
			name:    "half rounds up",
			taxable: "100.50", cgstRate: "0", sgstRate: "0",
			cgst: "0", sgst: "0", total: "101", roundedOff: "0.5",
		},
		{
			name:    "zero amount",
			taxable: "0", cgstRate: "6", sgstRate: "6",
			cgst: "0", sgst: "0", total: "0", roundedOff: "0",
		},
		{
			name:    "uneven split",
			taxable: "200", cgstRate: "9", sgstRate: "2.5",
			cgst: "18", sgst: "5", total: "223", roundedOff: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.ComputeTaxes(dec(tt.taxable), dec(tt.cgstRate), dec(tt.sgstRate))
			if !got.CGSTAmount.Equal(dec(tt.cgst)) {
				t.Errorf("cgst = %s, want %s", got.CGSTAmount, tt.cgst)
			}
			if !got.SGSTAmount.Equal(dec(tt.sgst)) {
				t.Errorf("sgst = %s, want %s", got.SGSTAmount, tt.sgst)
			}
			if !got.TotalAmount.Equal(dec(tt.total)) {
				t.Errorf("total = %s, want %s", got.TotalAmount, tt.total)
			}
			if !got.RoundedOff.Equal(dec(tt.roundedOff)) {
				t.Errorf("rounded off = %s, want %s", got.RoundedOff, tt.roundedOff)
			}
		})
	}
}

func TestComputeTaxes_TotalsReconcile(t *testing.T) {
	amounts := []string{"0", "0.01", "0.49", "0.5", "12.345", "999.40", "1049.995", "123456.78", "99999999.99"}
	rates := []string{"0", "2.5", "6", "9", "14"}

	for _, a := range amounts {
		for _, r := range rates {
			got := billing.ComputeTaxes(dec(a), dec(r), dec(r))
			sum := got.TaxableAmount.Add(got.CGSTAmount).Add(got.SGSTAmount).Add(got.RoundedOff)
			if !sum.Equal(got.TotalAmount) {
				t.Errorf("amount %s rate %s: parts sum to %s, total %s", a, r, sum, got.TotalAmount)
			}
			if !got.TotalAmount.Equal(got.TotalAmount.Truncate(0)) {
				t.Errorf("amount %s rate %s: total %s is not whole", a, r, got.TotalAmount)
			}
			if got.RoundedOff.Abs().GreaterThan(dec("0.5")) {
				t.Errorf("amount %s rate %s: rounded off %s exceeds half a rupee", a, r, got.RoundedOff)
			}
		}
	}
}

func TestComputeTaxes_Idempotent(t *testing.T) {
	first := billing.ComputeTaxes(dec("999.40"), dec("2.5"), dec("2.5"))
	second := billing.ComputeTaxes(dec("999.40"), dec("2.5"), dec("2.5"))
	if first.TotalAmount.String() != second.TotalAmount.String() ||
		first.RoundedOff.String() != second.RoundedOff.String() ||
		first.CGSTAmount.String() != second.CGSTAmount.String() {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

func TestSplitRate(t *testing.T) {
	cgst, sgst := billing.SplitRate(dec("5"))
	if !cgst.Equal(dec("2.5")) || !sgst.Equal(dec("2.5")) {
		t.Errorf("SplitRate(5) = %s, %s", cgst, sgst)
	}
}

func TestFromFloat(t *testing.T) {
	if _, err := billing.FromFloat(math.NaN()); err != billing.ErrNonFinite {
		t.Errorf("NaN: got err %v", err)
	}
	if _, err := billing.FromFloat(math.Inf(-1)); err != billing.ErrNonFinite {
		t.Errorf("-Inf: got err %v", err)
	}
	d, err := billing.FromFloat(1049.37)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(dec("1049.37")) {
		t.Errorf("FromFloat(1049.37) = %s", d)
	}
}
