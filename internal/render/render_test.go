package render

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"gstinvoice/m/domain"
)

func sampleInvoice(no string, taxable string) domain.Invoice {
	amount := decimal.RequireFromString(taxable)
	inv := domain.Invoice{
		InvoiceNo:     no,
		InvoiceDate:   "2024-03-15",
		Seller:        domain.SellerSnapshot{Name: "Shree Gas Agencies", GSTIN: "27ABCDE1234F1Z5"},
		Buyer:         domain.BuyerSnapshot{Name: "Acme Welding", GSTIN: "27AAACA1111A1Z1"},
		Bank:          domain.BankSnapshot{BankName: "State Bank of India", AccountNo: "1234"},
		AmountInWords: "INR One Thousand Forty Nine Only",
		Items: []domain.InvoiceItem{{
			Description: "Oxygen Cylinder", HSNSAC: "28044010",
			Quantity: decimal.NewFromInt(2), RatePerItem: amount.Div(decimal.NewFromInt(2)),
			GSTRate: decimal.NewFromInt(5), Amount: amount,
		}},
	}
	inv.TaxableAmount = amount
	inv.CGSTRate = decimal.RequireFromString("2.5")
	inv.SGSTRate = decimal.RequireFromString("2.5")
	inv.CGSTAmount = decimal.RequireFromString("24.985")
	inv.SGSTAmount = decimal.RequireFromString("24.985")
	inv.RoundedOff = decimal.RequireFromString("-0.37")
	inv.TotalAmount = decimal.NewFromInt(1049)
	inv.EWayBillNo = "EWB-0001"
	return inv
}

func TestInvoicePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := InvoicePDF(&buf, sampleInvoice("INV/2024/03/0001", "999.40")); err != nil {
		t.Fatalf("InvoicePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF")
	}
}

func TestEWayBillPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := EWayBillPDF(&buf, sampleInvoice("INV/2024/03/0001", "999.40")); err != nil {
		t.Fatalf("EWayBillPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF")
	}
}

func TestRegister(t *testing.T) {
	invoices := []domain.Invoice{
		sampleInvoice("INV/2024/03/0001", "999.40"),
		sampleInvoice("INV/2024/03/0002", "999.40"),
	}
	var buf bytes.Buffer
	if err := Register(&buf, invoices); err != nil {
		t.Fatalf("Register: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	cells := map[string]string{
		"A1": "Invoice No.",
		"A2": "INV/2024/03/0001",
		"C3": "Acme Welding",
		"I2": "1049",
		"A4": "Total",
		"I4": "2098",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(registerSheet, cell)
		if err != nil {
			t.Fatalf("cell %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty("", "b"); got != "b" {
		t.Errorf("got %q", got)
	}
	if got := joinNonEmpty("a", "b"); got != "a / b" {
		t.Errorf("got %q", got)
	}
}
