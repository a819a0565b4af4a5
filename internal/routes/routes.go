package routes

import (
	"github.com/YTU94/ai-e-contract/config"
	"github.com/YTU94/ai-e-contract/internal/handlers"
	"github.com/YTU94/ai-e-contract/internal/middleware"
	"github.com/YTU94/ai-e-contract/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// SetupRoutes wires every endpoint onto the engine. Public routes come
// first; everything under /api except auth requires a valid session.
func SetupRoutes(r *gin.Engine, cfg *config.Config, rdb *redis.Client, st store.Store, h *handlers.Handler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded PDFs are served straight from disk.
	r.Static("/uploads/contracts", cfg.UploadDir)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.RegisterHandler)
		auth.POST("/login", h.LoginHandler)
		auth.POST("/logout", h.LogoutHandler)
	}

	// Diagnostics endpoints stay open so a broken deployment can still be
	// inspected.
	r.GET("/api/system-info", h.SystemInfoHandler)
	r.GET("/api/env-check", h.EnvCheckHandler)
	r.GET("/api/database/setup", h.DatabaseStatusHandler)
	r.POST("/api/database/setup", h.SetupDatabaseHandler)

	api := r.Group("/api")
	api.Use(middleware.Auth(cfg, rdb, st))
	{
		api.GET("/auth/me", h.MeHandler)

		contracts := api.Group("/contracts")
		{
			contracts.GET("", h.ListContractsHandler)
			contracts.POST("", h.CreateContractHandler)
			contracts.POST("/upload", h.UploadContractHandler)
			contracts.POST("/from-template", h.CreateFromTemplateHandler)
			contracts.GET("/export", h.ExportContractsHandler)
			contracts.GET("/:id", h.GetContractHandler)
			contracts.PUT("/:id", h.UpdateContractHandler)
			contracts.DELETE("/:id", h.DeleteContractHandler)
			contracts.POST("/:id/sign", h.SignContractHandler)
			contracts.GET("/:id/signatures", h.ListSignaturesHandler)
		}

		templates := api.Group("/templates")
		{
			templates.GET("", h.ListTemplatesHandler)
			templates.POST("", h.CreateTemplateHandler)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/pending", h.PendingContractsHandler)
			dashboard.GET("/completed", h.CompletedContractsHandler)
			dashboard.GET("/partners", h.PartnersHandler)
		}

		aiGroup := api.Group("/ai")
		{
			aiGroup.POST("/analyze-contract", h.AnalyzeContractHandler)
			aiGroup.POST("/chat", h.AIChatHandler)
			aiGroup.POST("/generate-contract", h.GenerateContractHandler)
			aiGroup.GET("/generate-contract/ws", h.StreamGenerateHandler)
			aiGroup.GET("/test", h.AITestHandler)
			aiGroup.POST("/test", h.AITestHandler)
			aiGroup.GET("/performance-test", h.AIPerformanceHandler)
			aiGroup.GET("/info", h.AIInfoHandler)
		}
	}
}
