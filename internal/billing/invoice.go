package billing

import (
	"github.com/shopspring/decimal"

	"gstinvoice/m/domain"
)

// Recompute refreshes every derived value on the invoice: row amounts, the
// tax breakdown over their sum at the invoice's current CGST/SGST rates, and
// the total in words. Callers run it after each mutation; nothing here is
// scheduled implicitly.
func Recompute(inv *domain.Invoice) {
	taxable := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].Position = i + 1
		RecomputeItem(&inv.Items[i])
		taxable = taxable.Add(inv.Items[i].Amount)
	}
	inv.TaxBreakdown = ComputeTaxes(taxable, inv.CGSTRate, inv.SGSTRate)
	inv.AmountInWords = ToWords(inv.TotalAmount)
}

// DefaultRates picks the CGST/SGST rates for an invoice from its first row
// carrying a non-zero GST rate.
func DefaultRates(items []domain.InvoiceItem) (cgstRate, sgstRate decimal.Decimal) {
	for _, item := range items {
		if !item.GSTRate.IsZero() {
			return SplitRate(item.GSTRate)
		}
	}
	return decimal.Zero, decimal.Zero
}
