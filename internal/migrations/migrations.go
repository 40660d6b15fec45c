package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema for users, masters and invoices. Money is
// stored as TEXT so decimal values round-trip exactly.
func Run(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS buyers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            address TEXT NOT NULL DEFAULT '',
            gstin TEXT NOT NULL DEFAULT '',
            state TEXT NOT NULL DEFAULT '',
            state_code TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS sellers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            address TEXT NOT NULL DEFAULT '',
            gstin TEXT NOT NULL DEFAULT '',
            pan TEXT NOT NULL DEFAULT '',
            state TEXT NOT NULL DEFAULT '',
            state_code TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS banks (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            account_name TEXT NOT NULL,
            bank_name TEXT NOT NULL,
            account_no TEXT NOT NULL,
            ifsc TEXT NOT NULL DEFAULT '',
            branch TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS products (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            kind TEXT NOT NULL,
            name TEXT NOT NULL,
            hsn_sac TEXT NOT NULL DEFAULT '',
            gst_rate TEXT NOT NULL DEFAULT '0',
            default_rate TEXT NOT NULL DEFAULT '0',
            capacity TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            UNIQUE(kind, name)
        );`,
		`CREATE TABLE IF NOT EXISTS invoices (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            invoice_no TEXT NOT NULL UNIQUE,
            invoice_date TEXT NOT NULL,
            seller TEXT NOT NULL,
            buyer TEXT NOT NULL,
            bank TEXT NOT NULL,
            taxable_amount TEXT NOT NULL,
            cgst_rate TEXT NOT NULL,
            sgst_rate TEXT NOT NULL,
            cgst_amount TEXT NOT NULL,
            sgst_amount TEXT NOT NULL,
            rounded_off TEXT NOT NULL,
            total_amount TEXT NOT NULL,
            amount_in_words TEXT NOT NULL,
            eway_bill_no TEXT NOT NULL DEFAULT '',
            vehicle_no TEXT NOT NULL DEFAULT '',
            dispatched_through TEXT NOT NULL DEFAULT '',
            destination TEXT NOT NULL DEFAULT '',
            delivery_note TEXT NOT NULL DEFAULT '',
            buyer_order_no TEXT NOT NULL DEFAULT '',
            terms_of_delivery TEXT NOT NULL DEFAULT '',
            irn TEXT NOT NULL DEFAULT '',
            ack_no TEXT NOT NULL DEFAULT '',
            ack_date TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS invoice_items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            invoice_id INTEGER NOT NULL,
            position INTEGER NOT NULL,
            product_id INTEGER,
            description TEXT NOT NULL,
            hsn_sac TEXT NOT NULL DEFAULT '',
            quantity TEXT NOT NULL,
            rate_per_item TEXT NOT NULL,
            gst_rate TEXT NOT NULL,
            rate_inc_tax TEXT NOT NULL,
            amount TEXT NOT NULL,
            FOREIGN KEY(invoice_id) REFERENCES invoices(id) ON DELETE CASCADE,
            FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE SET NULL
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
