package domain

type Seller struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Address   string `db:"address" json:"address"`
	GSTIN     string `db:"gstin" json:"gstin"`
	PAN       string `db:"pan" json:"pan"`
	State     string `db:"state" json:"state"`
	StateCode string `db:"state_code" json:"state_code"`
	Phone     string `db:"phone" json:"phone"`
	Email     string `db:"email" json:"email"`
	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
}

type BankAccount struct {
	ID          int64  `db:"id" json:"id"`
	AccountName string `db:"account_name" json:"account_name"`
	BankName    string `db:"bank_name" json:"bank_name"`
	AccountNo   string `db:"account_no" json:"account_no"`
	IFSC        string `db:"ifsc" json:"ifsc"`
	Branch      string `db:"branch" json:"branch"`
	CreatedAt   string `db:"created_at" json:"created_at,omitempty"`
}
