// Package main is the entry point for the e-contract service.
package main

import (
	"log/slog"
	"os"

	"github.com/YTU94/ai-e-contract/config"
	"github.com/YTU94/ai-e-contract/internal/ai"
	"github.com/YTU94/ai-e-contract/internal/handlers"
	"github.com/YTU94/ai-e-contract/internal/routes"
	"github.com/YTU94/ai-e-contract/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var db *gorm.DB
	if !cfg.UseMockDatabase() {
		db, err = config.ConnectDB(cfg)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
	}

	rdb := config.ConnectRedis(cfg)

	st := store.New(cfg, db)
	slog.Info("Storage backend selected", "type", st.DatabaseType())

	aiSvc := ai.New(cfg)
	h := handlers.New(cfg, st, aiSvc)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	routes.SetupRoutes(r, cfg, rdb, st, h)

	slog.Info("Starting e-contract service", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
