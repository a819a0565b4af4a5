// Package handlers contains the HTTP route handlers. They translate JSON
// bodies into store / AI service calls and serialize the results back.
package handlers

import (
	"log/slog"

	"github.com/YTU94/ai-e-contract/config"
	"github.com/YTU94/ai-e-contract/internal/ai"
	"github.com/YTU94/ai-e-contract/internal/store"
	"github.com/YTU94/ai-e-contract/models"

	"github.com/gin-gonic/gin"
)

// Handler carries the shared dependencies for every route handler.
type Handler struct {
	Cfg   *config.Config
	Store store.Store
	AI    *ai.Service
}

func New(cfg *config.Config, st store.Store, aiSvc *ai.Service) *Handler {
	return &Handler{Cfg: cfg, Store: st, AI: aiSvc}
}

// currentUserID reads the identity set by the auth middleware.
func currentUserID(c *gin.Context) string {
	id, _ := c.Get("user_id")
	s, _ := id.(string)
	return s
}

// audit records an audit log entry. Audit failures are logged, never
// surfaced: they must not fail the request that triggered them.
func (h *Handler) audit(c *gin.Context, action, entityType, entityID string, details models.JSONMap) {
	userID := currentUserID(c)
	entry := &models.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
	if userID != "" {
		entry.UserID = &userID
	}
	if _, err := h.Store.CreateAuditLog(c.Request.Context(), entry); err != nil {
		slog.Error("Failed to write audit log", "action", action, "error", err)
	}
}
