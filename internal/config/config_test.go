package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SECRET", "DATABASE_DSN", "HTTP_PORT", "INVOICE_PREFIX", "LOG_LEVEL", "CATALOG_CSV"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Secret != "dev_secret" || cfg.HTTPPort != "8080" || cfg.InvoicePrefix != "INV" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("INVOICE_PREFIX", "GAS")
	t.Setenv("DATABASE_DSN", "file::memory:")
	cfg := Load()
	if cfg.HTTPPort != "9090" || cfg.InvoicePrefix != "GAS" || cfg.DatabaseDSN != "file::memory:" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	if cfg := Load(); cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	if got := NewLogger("debug").GetLevel(); got != logrus.DebugLevel {
		t.Errorf("level = %v", got)
	}
	if got := NewLogger("loud").GetLevel(); got != logrus.InfoLevel {
		t.Errorf("fallback level = %v", got)
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info")
	logger.SetOutput(&buf)

	LogError(logger, "api", "createInvoice", "insert", map[string]string{"invoice_no": "INV/2024/03/0001"}, errors.New("boom"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "boom" || entry["module"] != "api" || entry["funcName"] != "createInvoice" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["data"]; !ok {
		t.Errorf("data field missing: %v", entry)
	}
}
