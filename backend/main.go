package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"gstinvoice/m/internal/api"
	"gstinvoice/m/internal/config"
	"gstinvoice/m/internal/database"
	"gstinvoice/m/internal/migrations"
	"gstinvoice/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		logger.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		logger.WithError(err).Fatal("migrations failed")
	}
	if err := seed.Apply(db, seed.DefaultData()); err != nil {
		logger.WithError(err).Fatal("seeding defaults failed")
	}
	seed.LoadCatalog(db, cfg.CatalogCSV, logger)

	handler := api.New(db, cfg, logger)

	logger.WithField("port", cfg.HTTPPort).Info("GST invoice server starting")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}
