package domain

import "github.com/shopspring/decimal"

type ProductKind string

const (
	KindCylinder ProductKind = "cylinder"
	KindBottle   ProductKind = "bottle"
)

// Product is a catalog entry. GSTRate is the total GST percentage; invoices
// split it evenly into CGST and SGST.
type Product struct {
	ID          int64           `db:"id" json:"id"`
	Kind        ProductKind     `db:"kind" json:"kind"`
	Name        string          `db:"name" json:"name"`
	HSNSAC      string          `db:"hsn_sac" json:"hsn_sac"`
	GSTRate     decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	DefaultRate decimal.Decimal `db:"default_rate" json:"default_rate"`
	Capacity    string          `db:"capacity" json:"capacity"`
	CreatedAt   string          `db:"created_at" json:"created_at,omitempty"`
}
