package seed

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"gstinvoice/m/domain"
)

// Defaults is the starter data written into an empty database.
type Defaults struct {
	Sellers  []domain.Seller
	Banks    []domain.BankAccount
	Buyers   []domain.Buyer
	Products []domain.Product
}

// DefaultData returns the distributor's starter profile and catalog.
func DefaultData() Defaults {
	return Defaults{
		Sellers: []domain.Seller{{
			Name:      "Shree Gas Agencies",
			Address:   "Plot 12, Industrial Area, Nashik",
			GSTIN:     "27ABCDE1234F1Z5",
			PAN:       "ABCDE1234F",
			State:     "Maharashtra",
			StateCode: "27",
		}},
		Banks: []domain.BankAccount{{
			AccountName: "Shree Gas Agencies",
			BankName:    "State Bank of India",
			AccountNo:   "00000012345678901",
			IFSC:        "SBIN0000001",
			Branch:      "Nashik Main",
		}},
		Buyers: []domain.Buyer{{
			Name:      "Cash Customer",
			State:     "Maharashtra",
			StateCode: "27",
		}},
		Products: []domain.Product{
			{Kind: domain.KindCylinder, Name: "Oxygen Cylinder 7 cu.m", HSNSAC: "28044010", GSTRate: decimal.NewFromInt(12), DefaultRate: decimal.NewFromInt(350), Capacity: "7 cu.m"},
			{Kind: domain.KindCylinder, Name: "LPG Commercial 19 kg", HSNSAC: "27111900", GSTRate: decimal.NewFromInt(18), DefaultRate: decimal.NewFromInt(1650), Capacity: "19 kg"},
			{Kind: domain.KindBottle, Name: "Nitrogen Bottle 1.5 cu.m", HSNSAC: "28043000", GSTRate: decimal.NewFromInt(18), DefaultRate: decimal.NewFromInt(180), Capacity: "1.5 cu.m"},
		},
	}
}

// Apply writes each group of defaults into its table when that table is empty.
func Apply(db *sqlx.DB, d Defaults) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("unable to start seed transaction: %w", err)
	}
	defer tx.Rollback()

	if empty, err := isEmpty(tx, "sellers"); err != nil {
		return err
	} else if empty {
		for _, s := range d.Sellers {
			if _, err := tx.NamedExec(`INSERT INTO sellers (name, address, gstin, pan, state, state_code, phone, email)
                VALUES (:name, :address, :gstin, :pan, :state, :state_code, :phone, :email)`, s); err != nil {
				return fmt.Errorf("unable to seed seller %s: %w", s.Name, err)
			}
		}
	}

	if empty, err := isEmpty(tx, "banks"); err != nil {
		return err
	} else if empty {
		for _, b := range d.Banks {
			if _, err := tx.NamedExec(`INSERT INTO banks (account_name, bank_name, account_no, ifsc, branch)
                VALUES (:account_name, :bank_name, :account_no, :ifsc, :branch)`, b); err != nil {
				return fmt.Errorf("unable to seed bank %s: %w", b.BankName, err)
			}
		}
	}

	if empty, err := isEmpty(tx, "buyers"); err != nil {
		return err
	} else if empty {
		for _, b := range d.Buyers {
			if _, err := tx.NamedExec(`INSERT INTO buyers (name, address, gstin, state, state_code, phone, email)
                VALUES (:name, :address, :gstin, :state, :state_code, :phone, :email)`, b); err != nil {
				return fmt.Errorf("unable to seed buyer %s: %w", b.Name, err)
			}
		}
	}

	if empty, err := isEmpty(tx, "products"); err != nil {
		return err
	} else if empty {
		for _, p := range d.Products {
			if _, err := tx.NamedExec(`INSERT INTO products (kind, name, hsn_sac, gst_rate, default_rate, capacity)
                VALUES (:kind, :name, :hsn_sac, :gst_rate, :default_rate, :capacity)`, p); err != nil {
				return fmt.Errorf("unable to seed product %s: %w", p.Name, err)
			}
		}
	}

	return tx.Commit()
}

func isEmpty(tx *sqlx.Tx, table string) (bool, error) {
	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
		return false, fmt.Errorf("unable to count %s: %w", table, err)
	}
	return n == 0, nil
}
