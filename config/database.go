package config

import (
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the Postgres connection described by cfg.DatabaseURL.
// Callers running in mock mode never reach this.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		slog.Error("数据库连接失败", "error", err)
		return nil, err
	}

	slog.Info("数据库连接成功")
	return db, nil
}
