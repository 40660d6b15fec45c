// Package billing computes invoice amounts: line totals, the CGST/SGST split,
// the rounded grand total, the total in words and the next invoice number.
// Every function is pure and safe to call on each edit of an invoice form.
package billing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"gstinvoice/m/domain"
)

// ErrNonFinite is returned by FromFloat for NaN and infinite input.
var ErrNonFinite = errors.New("amount must be a finite number")

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
	two     = decimal.NewFromInt(2)
)

// FromFloat converts a float amount for use with the engine. Callers holding
// float input must go through it: NaN and infinities are rejected here.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrNonFinite
	}
	return decimal.NewFromFloat(f), nil
}

// ComputeTaxes splits tax over the taxable amount and rounds the grand total to
// the nearest rupee. Negative input is not rejected.
func ComputeTaxes(taxableAmount, cgstRate, sgstRate decimal.Decimal) domain.TaxBreakdown {
	cgst := taxableAmount.Mul(cgstRate).Div(hundred)
	sgst := taxableAmount.Mul(sgstRate).Div(hundred)
	raw := taxableAmount.Add(cgst).Add(sgst)
	total := RoundHalfUp(raw)

	return domain.TaxBreakdown{
		TaxableAmount: taxableAmount,
		CGSTRate:      cgstRate,
		SGSTRate:      sgstRate,
		CGSTAmount:    cgst,
		SGSTAmount:    sgst,
		RoundedOff:    total.Sub(raw),
		TotalAmount:   total,
	}
}

// RoundHalfUp rounds to an integer with halves going towards +Inf.
func RoundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// SplitRate divides a total GST rate into equal CGST and SGST rates.
func SplitRate(gstRate decimal.Decimal) (cgstRate, sgstRate decimal.Decimal) {
	r := gstRate.Div(two)
	return r, r
}
