// Package render produces the printable documents for invoices: the tax
// invoice and e-Way bill sheets as PDF and the invoice register as XLSX.
package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"gstinvoice/m/domain"
)

const (
	pageWidth = 190.0
	lineH     = 6.0
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(pageWidth, 10, title, "", 1, "C", false, 0, "")
	return pdf
}

// InvoicePDF writes the tax invoice for inv.
func InvoicePDF(w io.Writer, inv domain.Invoice) error {
	pdf := newDocument("TAX INVOICE")

	half := pageWidth / 2
	y := pdf.GetY()
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(half, lineH, inv.Seller.Name, "LTR", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(half, 5, sellerBlock(inv.Seller), "LRB", "L", false)
	leftBottom := pdf.GetY()

	pdf.SetXY(10+half, y)
	meta := [][2]string{
		{"Invoice No.", inv.InvoiceNo},
		{"Dated", inv.InvoiceDate},
		{"Delivery Note", inv.DeliveryNote},
		{"Buyer's Order No.", inv.BuyerOrderNo},
		{"Dispatched Through", inv.DispatchedThrough},
		{"Destination", inv.Destination},
		{"e-Way Bill No.", inv.EWayBillNo},
		{"IRN", inv.IRN},
		{"Ack No. / Date", joinNonEmpty(inv.AckNo, inv.AckDate)},
	}
	for _, kv := range meta {
		pdf.SetX(10 + half)
		pdf.CellFormat(half*0.4, 5, kv[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(half*0.6, 5, kv[1], "1", 1, "L", false, 0, "")
	}
	if pdf.GetY() < leftBottom {
		pdf.SetY(leftBottom)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(pageWidth, lineH, "Buyer (Bill to): "+inv.Buyer.Name, "LTR", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(pageWidth, 5, buyerBlock(inv.Buyer), "LRB", "L", false)

	cols := []struct {
		title string
		width float64
		align string
	}{
		{"Sl", 10, "C"},
		{"Description of Goods", 62, "L"},
		{"HSN/SAC", 24, "C"},
		{"Quantity", 20, "R"},
		{"Rate (Incl. Tax)", 26, "R"},
		{"Rate", 22, "R"},
		{"Amount", 26, "R"},
	}
	pdf.SetFont("Arial", "B", 9)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for i, item := range inv.Items {
		values := []string{
			fmt.Sprintf("%d", i+1),
			item.Description,
			item.HSNSAC,
			item.Quantity.String(),
			money(item.RateIncTax),
			money(item.RatePerItem),
			money(item.Amount),
		}
		for j, c := range cols {
			pdf.CellFormat(c.width, lineH, values[j], "LR", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	labelW := pageWidth - cols[len(cols)-1].width
	totals := [][2]string{
		{"Taxable Value", money(inv.TaxableAmount)},
		{fmt.Sprintf("CGST @ %s%%", inv.CGSTRate.String()), money(inv.CGSTAmount)},
		{fmt.Sprintf("SGST @ %s%%", inv.SGSTRate.String()), money(inv.SGSTAmount)},
		{"Rounded Off", money(inv.RoundedOff)},
	}
	for _, kv := range totals {
		pdf.CellFormat(labelW, lineH, kv[0], "1", 0, "R", false, 0, "")
		pdf.CellFormat(pageWidth-labelW, lineH, kv[1], "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(labelW, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(pageWidth-labelW, 7, money(inv.TotalAmount), "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(pageWidth, lineH, "Amount Chargeable (in words)", "LTR", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.MultiCell(pageWidth, 5, inv.AmountInWords, "LRB", "L", false)

	pdf.Ln(2)
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(half, 5, bankBlock(inv.Bank), "1", "L", false)
	pdf.SetXY(10+half, pdf.GetY()-5)
	pdf.CellFormat(half, 5, "for "+inv.Seller.Name, "", 1, "R", false, 0, "")
	pdf.Ln(10)
	pdf.CellFormat(pageWidth, 5, "Authorised Signatory", "", 1, "R", false, 0, "")

	return pdf.Output(w)
}

// EWayBillPDF writes the e-Way bill sheet. The values are printed as entered.
func EWayBillPDF(w io.Writer, inv domain.Invoice) error {
	pdf := newDocument("e-Way Bill")
	pdf.SetFont("Arial", "", 10)

	rows := [][2]string{
		{"e-Way Bill No.", inv.EWayBillNo},
		{"Document No.", inv.InvoiceNo},
		{"Document Date", inv.InvoiceDate},
		{"GSTIN of Supplier", inv.Seller.GSTIN},
		{"Place of Dispatch", inv.Seller.Address},
		{"GSTIN of Recipient", inv.Buyer.GSTIN},
		{"Place of Delivery", joinNonEmpty(inv.Destination, inv.Buyer.Address)},
		{"Value of Goods", money(inv.TotalAmount)},
		{"HSN Code", firstHSN(inv.Items)},
		{"Transporter", inv.DispatchedThrough},
		{"Vehicle No.", inv.VehicleNo},
		{"IRN", inv.IRN},
	}
	for _, kv := range rows {
		pdf.CellFormat(60, 8, kv[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(pageWidth-60, 8, kv[1], "1", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}

func sellerBlock(s domain.SellerSnapshot) string {
	return fmt.Sprintf("%s\nGSTIN/UIN: %s\nState Name: %s, Code: %s\nPAN: %s", s.Address, s.GSTIN, s.State, s.StateCode, s.PAN)
}

func buyerBlock(b domain.BuyerSnapshot) string {
	return fmt.Sprintf("%s\nGSTIN/UIN: %s\nState Name: %s, Code: %s", b.Address, b.GSTIN, b.State, b.StateCode)
}

func bankBlock(b domain.BankSnapshot) string {
	return fmt.Sprintf("Company's Bank Details\nA/c Holder: %s\nBank Name: %s\nA/c No.: %s\nBranch & IFS Code: %s & %s",
		b.AccountName, b.BankName, b.AccountNo, b.Branch, b.IFSC)
}

func firstHSN(items []domain.InvoiceItem) string {
	for _, item := range items {
		if item.HSNSAC != "" {
			return item.HSNSAC
		}
	}
	return ""
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " / " + b
	}
}
