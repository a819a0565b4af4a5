package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type envVarStatus struct {
	Configured bool   `json:"configured"`
	Valid      bool   `json:"valid"`
	Masked     string `json:"masked,omitempty"`
	Value      string `json:"value,omitempty"`
}

func maskSecret(v string, keep int) string {
	if v == "" {
		return "Not set"
	}
	if len(v) <= keep {
		return v + "..."
	}
	return v[:keep] + "..."
}

// SystemInfoHandler reports which storage backend is active and whether the
// ambient services are configured.
func (h *Handler) SystemInfoHandler(c *gin.Context) {
	dbType := h.Store.DatabaseType()
	description := "Using PostgreSQL database"
	if dbType == "mock" {
		description = "Using in-memory mock database"
	}

	c.JSON(http.StatusOK, gin.H{
		"database": gin.H{
			"type":        dbType,
			"connected":   h.Store.TestConnection(c.Request.Context()),
			"description": description,
		},
		"environment": h.Cfg.AppEnv,
		"hasAI":       h.Cfg.HasAI(),
		"hasRedis":    h.Cfg.RedisAddr != "",
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

// EnvCheckHandler validates the deployment environment variables without
// exposing their values.
func (h *Handler) EnvCheckHandler(c *gin.Context) {
	variables := map[string]envVarStatus{
		"DATABASE_URL": {
			Configured: h.Cfg.DatabaseURL != "",
			Valid: strings.HasPrefix(h.Cfg.DatabaseURL, "postgres://") ||
				strings.HasPrefix(h.Cfg.DatabaseURL, "postgresql://"),
			Masked: maskSecret(h.Cfg.DatabaseURL, 20),
		},
		"JWT_SECRET": {
			Configured: h.Cfg.JWTSecret != "",
			Valid:      len(h.Cfg.JWTSecret) >= 32,
			Masked:     maskSecret(h.Cfg.JWTSecret, 8),
		},
		"DEEPSEEK_API_KEY": {
			Configured: h.Cfg.DeepSeekAPIKey != "",
			Valid:      strings.HasPrefix(h.Cfg.DeepSeekAPIKey, "sk-"),
			Masked:     maskSecret(h.Cfg.DeepSeekAPIKey, 6),
		},
		"OPENAI_API_KEY": {
			Configured: h.Cfg.OpenAIAPIKey != "",
			Valid:      strings.HasPrefix(h.Cfg.OpenAIAPIKey, "sk-"),
			Masked:     maskSecret(h.Cfg.OpenAIAPIKey, 6),
		},
		"REDIS_ADDR": {
			Configured: h.Cfg.RedisAddr != "",
			Valid:      h.Cfg.RedisAddr != "",
			Value:      h.Cfg.RedisAddr,
		},
		"APP_ENV": {
			Configured: h.Cfg.AppEnv != "",
			Valid:      true,
			Value:      h.Cfg.AppEnv,
		},
	}

	configured := 0
	valid := 0
	for _, v := range variables {
		if v.Configured {
			configured++
		}
		if v.Valid {
			valid++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     configured == len(variables) && valid == len(variables),
		"environment": h.Cfg.AppEnv,
		"variables":   variables,
		"summary": gin.H{
			"total":      len(variables),
			"configured": configured,
			"valid":      valid,
		},
	})
}

// DatabaseStatusHandler reports connectivity and the seeded user count.
func (h *Handler) DatabaseStatusHandler(c *gin.Context) {
	connected := h.Store.TestConnection(c.Request.Context())

	var userCount int64
	if connected {
		count, err := h.Store.CountUsers(c.Request.Context())
		if err != nil {
			slog.Error("Failed to count users", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "数据库查询失败"})
			return
		}
		userCount = count
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   connected,
		"userCount": userCount,
		"dbType":    h.Store.DatabaseType(),
	})
}

// SetupDatabaseHandler prepares the storage backend. The in-memory backend
// is always ready; postgres gets its schema migrated after a connectivity
// check.
func (h *Handler) SetupDatabaseHandler(c *gin.Context) {
	dbType := h.Store.DatabaseType()

	if dbType == "mock" {
		userCount, _ := h.Store.CountUsers(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Mock 数据库已准备就绪",
			"userCount": userCount,
			"dbType":    dbType,
		})
		return
	}

	if !h.Store.TestConnection(c.Request.Context()) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "数据库连接失败"})
		return
	}

	if migrator, ok := h.Store.(interface{ AutoMigrate() error }); ok {
		if err := migrator.AutoMigrate(); err != nil {
			slog.Error("Database migration failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "数据库设置失败"})
			return
		}
	}

	userCount, err := h.Store.CountUsers(c.Request.Context())
	if err != nil {
		slog.Error("Failed to count users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "数据库设置失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "数据库设置完成",
		"userCount": userCount,
		"dbType":    dbType,
	})
}
