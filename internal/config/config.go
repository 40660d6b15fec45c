package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Config holds application configuration values.
type Config struct {
	Secret        string
	DatabaseDSN   string
	HTTPPort      string
	InvoicePrefix string
	LogLevel      string
	CatalogCSV    string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	cfg := Config{
		Secret:        envOr("SECRET", "dev_secret"),
		DatabaseDSN:   envOr("DATABASE_DSN", "file:gstinvoice.db?_pragma=foreign_keys(1)"),
		HTTPPort:      envOr("HTTP_PORT", "8080"),
		InvoicePrefix: envOr("INVOICE_PREFIX", "INV"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		CatalogCSV:    envOr("CATALOG_CSV", "assets/catalog.csv"),
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		logrus.WithField("http_port", cfg.HTTPPort).Warn("invalid HTTP_PORT value, defaulting to 8080")
		cfg.HTTPPort = "8080"
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
