package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// InvoiceItem is one row of an invoice. RateIncTax and Amount are derived
// and recomputed whenever the row changes.
type InvoiceItem struct {
	ID          int64           `db:"id" json:"id,omitempty"`
	InvoiceID   int64           `db:"invoice_id" json:"-"`
	Position    int             `db:"position" json:"position"`
	ProductID   *int64          `db:"product_id" json:"product_id,omitempty"`
	Description string          `db:"description" json:"description"`
	HSNSAC      string          `db:"hsn_sac" json:"hsn_sac"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	RatePerItem decimal.Decimal `db:"rate_per_item" json:"rate_per_item"`
	GSTRate     decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	RateIncTax  decimal.Decimal `db:"rate_inc_tax" json:"rate_inc_tax"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
}

type TaxBreakdown struct {
	TaxableAmount decimal.Decimal `db:"taxable_amount" json:"taxable_amount"`
	CGSTRate      decimal.Decimal `db:"cgst_rate" json:"cgst_rate"`
	SGSTRate      decimal.Decimal `db:"sgst_rate" json:"sgst_rate"`
	CGSTAmount    decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	RoundedOff    decimal.Decimal `db:"rounded_off" json:"rounded_off"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
}

// Transport holds the e-Way bill and e-invoice fields. They are printed as
// entered and never sent anywhere.
type Transport struct {
	EWayBillNo        string `db:"eway_bill_no" json:"eway_bill_no"`
	VehicleNo         string `db:"vehicle_no" json:"vehicle_no"`
	DispatchedThrough string `db:"dispatched_through" json:"dispatched_through"`
	Destination       string `db:"destination" json:"destination"`
	DeliveryNote      string `db:"delivery_note" json:"delivery_note"`
	BuyerOrderNo      string `db:"buyer_order_no" json:"buyer_order_no"`
	TermsOfDelivery   string `db:"terms_of_delivery" json:"terms_of_delivery"`
	IRN               string `db:"irn" json:"irn"`
	AckNo             string `db:"ack_no" json:"ack_no"`
	AckDate           string `db:"ack_date" json:"ack_date"`
}

type Invoice struct {
	ID            int64          `db:"id" json:"id"`
	InvoiceNo     string         `db:"invoice_no" json:"invoice_no"`
	InvoiceDate   string         `db:"invoice_date" json:"invoice_date"`
	Seller        SellerSnapshot `db:"seller" json:"seller"`
	Buyer         BuyerSnapshot  `db:"buyer" json:"buyer"`
	Bank          BankSnapshot   `db:"bank" json:"bank"`
	Items         []InvoiceItem  `db:"-" json:"items"`
	AmountInWords string         `db:"amount_in_words" json:"amount_in_words"`
	CreatedAt     string         `db:"created_at" json:"created_at,omitempty"`
	TaxBreakdown
	Transport
}

// Snapshots are copied by value into the invoice row so later edits to the
// source records do not rewrite issued invoices.

type SellerSnapshot Seller

func (s SellerSnapshot) Value() (driver.Value, error) { return marshalSnapshot(s) }
func (s *SellerSnapshot) Scan(src any) error          { return unmarshalSnapshot(src, s) }

type BuyerSnapshot Buyer

func (b BuyerSnapshot) Value() (driver.Value, error) { return marshalSnapshot(b) }
func (b *BuyerSnapshot) Scan(src any) error          { return unmarshalSnapshot(src, b) }

type BankSnapshot BankAccount

func (b BankSnapshot) Value() (driver.Value, error) { return marshalSnapshot(b) }
func (b *BankSnapshot) Scan(src any) error          { return unmarshalSnapshot(src, b) }

func marshalSnapshot(v any) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func unmarshalSnapshot(src any, dest any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		return json.Unmarshal([]byte(v), dest)
	case []byte:
		return json.Unmarshal(v, dest)
	default:
		return fmt.Errorf("unsupported snapshot source %T", src)
	}
}
