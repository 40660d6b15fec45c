package render

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"gstinvoice/m/domain"
)

const registerSheet = "Register"

var registerHeader = []interface{}{
	"Invoice No.", "Date", "Buyer", "Buyer GSTIN", "Taxable Value",
	"CGST", "SGST", "Rounded Off", "Total",
}

// Register writes an XLSX invoice register with one row per invoice and a
// totals row at the bottom.
func Register(w io.Writer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(registerSheet, "A1", &registerHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(registerSheet, "A1", "I1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	var taxable, cgst, sgst, roundOff, total decimal.Decimal
	for i, inv := range invoices {
		row := []interface{}{
			inv.InvoiceNo, inv.InvoiceDate, inv.Buyer.Name, inv.Buyer.GSTIN,
			inv.TaxableAmount.InexactFloat64(), inv.CGSTAmount.InexactFloat64(),
			inv.SGSTAmount.InexactFloat64(), inv.RoundedOff.InexactFloat64(),
			inv.TotalAmount.InexactFloat64(),
		}
		if err := f.SetSheetRow(registerSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write invoice %s: %w", inv.InvoiceNo, err)
		}
		taxable = taxable.Add(inv.TaxableAmount)
		cgst = cgst.Add(inv.CGSTAmount)
		sgst = sgst.Add(inv.SGSTAmount)
		roundOff = roundOff.Add(inv.RoundedOff)
		total = total.Add(inv.TotalAmount)
	}

	totalsRow := len(invoices) + 2
	totals := []interface{}{
		"Total", "", "", "",
		taxable.InexactFloat64(), cgst.InexactFloat64(), sgst.InexactFloat64(),
		roundOff.InexactFloat64(), total.InexactFloat64(),
	}
	start := fmt.Sprintf("A%d", totalsRow)
	if err := f.SetSheetRow(registerSheet, start, &totals); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}
	if err := f.SetCellStyle(registerSheet, start, fmt.Sprintf("I%d", totalsRow), bold); err != nil {
		return fmt.Errorf("style totals: %w", err)
	}

	return f.Write(w)
}
