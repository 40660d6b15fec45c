package domain

type Buyer struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Address   string `db:"address" json:"address"`
	GSTIN     string `db:"gstin" json:"gstin"`
	State     string `db:"state" json:"state"`
	StateCode string `db:"state_code" json:"state_code"`
	Phone     string `db:"phone" json:"phone"`
	Email     string `db:"email" json:"email"`
	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
}
