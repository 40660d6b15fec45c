package billing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"gstinvoice/m/domain"
)

// Form values outside these bounds are treated as unparseable.
const (
	maxFormExponent = 21
	maxFormScale    = 18
)

var formLimit = decimal.New(1, maxFormExponent)

var (
	ErrGSTRateRange = errors.New("gst_rate must be between 0 and 100")
	ErrNegativeRate = errors.New("default_rate cannot be negative")
)

// ParseNumberOr parses a form value, returning fallback when the value is
// blank, not a number, or out of range (|value| >= 1e21 or more than 18
// decimal places). Form fields pass through here on every keystroke, so
// partial input is expected and never an error.
func ParseNumberOr(value string, fallback decimal.Decimal) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fallback
	}
	// exponent first: comparing rescales, which is what must be avoided
	if exp := d.Exponent(); exp > maxFormExponent || exp < -maxFormScale {
		return fallback
	}
	if d.Abs().GreaterThanOrEqual(formLimit) {
		return fallback
	}
	return d
}

// CheckCatalogRates validates the rates of a catalog entry.
func CheckCatalogRates(gstRate, defaultRate decimal.Decimal) error {
	if gstRate.IsNegative() || gstRate.GreaterThan(hundred) {
		return ErrGSTRateRange
	}
	if defaultRate.IsNegative() {
		return ErrNegativeRate
	}
	return nil
}

// ItemAmount is quantity × rate.
func ItemAmount(quantity, ratePerItem decimal.Decimal) decimal.Decimal {
	return quantity.Mul(ratePerItem)
}

// RateIncTax is the per-item rate including the product's full GST rate.
func RateIncTax(ratePerItem, gstRate decimal.Decimal) decimal.Decimal {
	return ratePerItem.Mul(hundred.Add(gstRate)).Div(hundred)
}

// NewItem builds an invoice row from raw form values. gstRate comes from the
// catalog entry picked for the row, not from the invoice's CGST/SGST split.
func NewItem(description, hsnSac, quantity, ratePerItem string, gstRate decimal.Decimal) domain.InvoiceItem {
	item := domain.InvoiceItem{
		Description: description,
		HSNSAC:      hsnSac,
		Quantity:    ParseNumberOr(quantity, decimal.Zero),
		RatePerItem: ParseNumberOr(ratePerItem, decimal.Zero),
		GSTRate:     gstRate,
	}
	RecomputeItem(&item)
	return item
}

// RecomputeItem refreshes the derived fields of a row after an edit.
func RecomputeItem(item *domain.InvoiceItem) {
	item.Amount = ItemAmount(item.Quantity, item.RatePerItem)
	item.RateIncTax = RateIncTax(item.RatePerItem, item.GSTRate)
}
