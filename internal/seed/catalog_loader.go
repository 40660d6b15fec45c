package seed

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"gstinvoice/m/domain"
	"gstinvoice/m/internal/billing"
)

// LoadCatalog ingests kind,name,hsn_sac,gst_rate,default_rate,capacity rows
// into the products table, ignoring duplicates. A missing file is not an
// error. It returns the number of rows inserted.
func LoadCatalog(db *sqlx.DB, csvPath string, logger *logrus.Logger) int {
	file, err := os.Open(csvPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.WithError(err).WithField("path", csvPath).Warn("unable to load product catalog")
		}
		return 0
	}
	defer file.Close()

	return loadCatalog(db, file, logger)
}

func loadCatalog(db *sqlx.DB, r io.Reader, logger *logrus.Logger) int {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	// Skip header
	if _, err := reader.Read(); err != nil {
		logger.WithError(err).Warn("unable to read catalog header")
		return 0
	}

	tx, err := db.Beginx()
	if err != nil {
		logger.WithError(err).Error("unable to start catalog transaction")
		return 0
	}
	stmt, err := tx.Preparex(`INSERT OR IGNORE INTO products (kind, name, hsn_sac, gst_rate, default_rate, capacity) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		logger.WithError(err).Error("unable to prepare catalog insert")
		_ = tx.Rollback()
		return 0
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.WithError(err).Warn("unable to read catalog row")
			continue
		}
		if len(record) < 5 {
			continue
		}
		kind := domain.ProductKind(strings.ToLower(strings.TrimSpace(record[0])))
		name := strings.TrimSpace(record[1])
		if name == "" || (kind != domain.KindCylinder && kind != domain.KindBottle) {
			continue
		}
		capacity := ""
		if len(record) > 5 {
			capacity = strings.TrimSpace(record[5])
		}
		gst := billing.ParseNumberOr(record[3], decimal.Zero)
		rate := billing.ParseNumberOr(record[4], decimal.Zero)
		if err := billing.CheckCatalogRates(gst, rate); err != nil {
			logger.WithError(err).WithField("name", name).Warn("skipping catalog row")
			continue
		}

		res, err := stmt.Exec(kind, name, strings.TrimSpace(record[2]), gst, rate, capacity)
		if err != nil {
			logger.WithError(err).WithField("name", name).Warn("unable to insert catalog row")
			continue
		}
		if n, _ := res.RowsAffected(); n > 0 {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		logger.WithError(err).Error("unable to commit catalog seed")
		return 0
	}
	logger.WithField("rows", rows).Info("seeded product catalog")
	return rows
}
