package handlers

import (
	"log/slog"
	"net/http"

	"github.com/YTU94/ai-e-contract/models"

	"github.com/gin-gonic/gin"
)

type CreateTemplateInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Content     string `json:"content" binding:"required"`
}

// ListTemplatesHandler returns every active template.
func (h *Handler) ListTemplatesHandler(c *gin.Context) {
	templates, err := h.Store.FindActiveTemplates(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list templates", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取模板失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// CreateTemplateHandler registers a new active template.
func (h *Handler) CreateTemplateHandler(c *gin.Context) {
	var input CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "模板名称和内容不能为空"})
		return
	}

	tpl, err := h.Store.CreateTemplate(c.Request.Context(), &models.ContractTemplate{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Content:     input.Content,
		IsActive:    true,
	})
	if err != nil {
		slog.Error("Failed to create template", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建模板失败"})
		return
	}

	h.audit(c, "CREATE_TEMPLATE", "ContractTemplate", tpl.ID, models.JSONMap{"name": tpl.Name})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "模板创建成功", "template": tpl})
}
