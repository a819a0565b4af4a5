package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/YTU94/ai-e-contract/internal/store"
	"github.com/YTU94/ai-e-contract/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 50 << 20 // 50MB

type CreateContractInput struct {
	Title      string         `json:"title" binding:"required"`
	Content    string         `json:"content" binding:"required"`
	Type       string         `json:"type"`
	TemplateID *string        `json:"templateId"`
	Metadata   models.JSONMap `json:"metadata"`
}

type UpdateContractInput struct {
	Title    *string        `json:"title"`
	Content  *string        `json:"content"`
	Status   *string        `json:"status"`
	Type     *string        `json:"type"`
	Version  *int           `json:"version"`
	Metadata models.JSONMap `json:"metadata"`
}

type FromTemplateInput struct {
	TemplateID string         `json:"templateId" binding:"required"`
	Title      string         `json:"title" binding:"required"`
	Variables  map[string]any `json:"variables"`
}

type SignContractInput struct {
	SignerName  string `json:"signerName" binding:"required"`
	SignerEmail string `json:"signerEmail" binding:"required,email"`
	Signature   string `json:"signature" binding:"required"`
}

// ListContractsHandler returns the caller's contracts with filters
// (status, type, search) and pagination.
func (h *Handler) ListContractsHandler(c *gin.Context) {
	userID := currentUserID(c)
	skip, take := skipTake(c)

	contracts, err := h.Store.FindContractsByUserID(c.Request.Context(), userID, store.ContractQuery{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Skip:   skip,
		Take:   take,
	})
	if err != nil {
		slog.Error("Failed to list contracts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取合同列表失败"})
		return
	}

	// totalRows reports the user's whole collection, not the filtered page.
	total, err := h.Store.CountContracts(c.Request.Context(), userID, "")
	if err != nil {
		slog.Error("Failed to count contracts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取合同列表失败"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, contracts, total))
}

// CreateContractHandler creates a contract in DRAFT at version 1.
func (h *Handler) CreateContractHandler(c *gin.Context) {
	var input CreateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "合同标题和内容不能为空"})
		return
	}

	contract, err := h.Store.CreateContract(c.Request.Context(), &models.Contract{
		Title:      input.Title,
		Content:    input.Content,
		Type:       input.Type,
		Status:     models.StatusDraft,
		Version:    1,
		TemplateID: input.TemplateID,
		Metadata:   input.Metadata,
		UserID:     currentUserID(c),
	})
	if err != nil {
		slog.Error("Failed to create contract", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建合同失败"})
		return
	}

	h.audit(c, "CREATE_CONTRACT", "Contract", contract.ID, models.JSONMap{"title": contract.Title})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "合同创建成功", "contract": contract})
}

// getOwnedContract loads a contract and enforces ownership. It writes the
// error response itself and returns nil when the caller should stop.
func (h *Handler) getOwnedContract(c *gin.Context) *models.Contract {
	contract, err := h.Store.FindContractByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		slog.Error("Failed to load contract", "error", err, "contract_id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取合同失败"})
		return nil
	}
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "合同不存在"})
		return nil
	}
	if contract.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "无权访问该合同"})
		return nil
	}
	return contract
}

// GetContractHandler returns one contract owned by the caller.
func (h *Handler) GetContractHandler(c *gin.Context) {
	contract := h.getOwnedContract(c)
	if contract == nil {
		return
	}
	c.JSON(http.StatusOK, contract)
}

// UpdateContractHandler merges the submitted fields over the stored record.
// Status values are checked against the known set, but transitions are not:
// any known status may replace any other (last write wins).
func (h *Handler) UpdateContractHandler(c *gin.Context) {
	var input UpdateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求数据格式错误"})
		return
	}

	if h.getOwnedContract(c) == nil {
		return
	}

	updates := make(map[string]any)
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的合同状态"})
			return
		}
		updates["status"] = *input.Status
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.Version != nil {
		updates["version"] = *input.Version
	}
	if input.Metadata != nil {
		updates["metadata"] = input.Metadata
	}

	contract, err := h.Store.UpdateContract(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		slog.Error("Failed to update contract", "error", err, "contract_id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新合同失败"})
		return
	}
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "合同不存在"})
		return
	}

	h.audit(c, "UPDATE_CONTRACT", "Contract", contract.ID, models.JSONMap{"fields": updateKeys(updates)})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "合同更新成功", "contract": contract})
}

// DeleteContractHandler moves a contract to CANCELLED. Contracts are never
// hard-deleted so signatures and audit history stay resolvable.
func (h *Handler) DeleteContractHandler(c *gin.Context) {
	if h.getOwnedContract(c) == nil {
		return
	}

	contract, err := h.Store.UpdateContract(c.Request.Context(), c.Param("id"), map[string]any{
		"status": models.StatusCancelled,
	})
	if err != nil || contract == nil {
		slog.Error("Failed to cancel contract", "error", err, "contract_id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除合同失败"})
		return
	}

	h.audit(c, "CANCEL_CONTRACT", "Contract", contract.ID, nil)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "合同删除成功"})
}

// UploadContractHandler accepts a PDF and records it as a contract whose
// metadata points at the stored file.
func (h *Handler) UploadContractHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize+512)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到文件"})
		return
	}
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "合同标题不能为空"})
		return
	}
	if file.Header.Get("Content-Type") != "application/pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "只支持PDF文件"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件大小不能超过50MB"})
		return
	}

	if err := os.MkdirAll(h.Cfg.UploadDir, os.ModePerm); err != nil {
		slog.Error("Failed to create upload directory", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "文件上传失败"})
		return
	}

	fileName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	filePath := filepath.Join(h.Cfg.UploadDir, fileName)
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		slog.Error("Failed to save uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "文件上传失败"})
		return
	}
	fileURL := "/uploads/contracts/" + fileName

	contractType := c.PostForm("type")
	if contractType == "" {
		contractType = "uploaded"
	}

	contract, err := h.Store.CreateContract(c.Request.Context(), &models.Contract{
		Title:   title,
		Content: fmt.Sprintf("PDF文件: %s", file.Filename),
		Type:    contractType,
		Status:  models.StatusDraft,
		Version: 1,
		UserID:  currentUserID(c),
		Metadata: models.JSONMap{
			"originalFileName": file.Filename,
			"fileSize":         file.Size,
			"fileUrl":          fileURL,
			"uploadedAt":       time.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		slog.Error("Failed to create uploaded contract", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建合同失败"})
		return
	}

	h.audit(c, "UPLOAD_CONTRACT", "Contract", contract.ID, models.JSONMap{
		"originalFileName": file.Filename,
		"fileSize":         file.Size,
	})
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"contractId": contract.ID,
		"message":    "合同创建成功",
		"contract":   contract,
		"pdfUrl":     fileURL,
	})
}

// CreateFromTemplateHandler instantiates a contract from an active template,
// filling its placeholder tokens from the supplied variables.
func (h *Handler) CreateFromTemplateHandler(c *gin.Context) {
	var input FromTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "模板ID和合同标题不能为空"})
		return
	}

	templates, err := h.Store.FindActiveTemplates(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load templates", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取模板失败"})
		return
	}

	var tpl *models.ContractTemplate
	for i := range templates {
		if templates[i].ID == input.TemplateID {
			tpl = &templates[i]
			break
		}
	}
	if tpl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "模板不存在或未启用"})
		return
	}

	content, err := RenderTemplate(tpl.Content, input.Variables)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "模板表达式无效", "details": err.Error()})
		return
	}

	contract, err := h.Store.CreateContract(c.Request.Context(), &models.Contract{
		Title:      input.Title,
		Content:    content,
		Type:       tpl.Name,
		Status:     models.StatusDraft,
		Version:    1,
		TemplateID: &tpl.ID,
		Metadata: models.JSONMap{
			"createdFrom": "template",
			"templateId":  tpl.ID,
		},
		UserID: currentUserID(c),
	})
	if err != nil {
		slog.Error("Failed to create contract from template", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建合同失败"})
		return
	}

	h.audit(c, "CREATE_CONTRACT", "Contract", contract.ID, models.JSONMap{
		"createdFrom": "template",
		"templateId":  tpl.ID,
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "contractId": contract.ID, "message": "合同创建成功", "contract": contract})
}

// SignContractHandler appends a signature and marks the contract SIGNED.
// Re-signing an already SIGNED contract is rejected here; this is the only
// place that checks the current status.
func (h *Handler) SignContractHandler(c *gin.Context) {
	var input SignContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "签署信息不完整"})
		return
	}

	contract := h.getOwnedContract(c)
	if contract == nil {
		return
	}
	if contract.Status == models.StatusSigned {
		c.JSON(http.StatusBadRequest, gin.H{"error": "合同已签署"})
		return
	}

	sig, err := h.Store.CreateSignature(c.Request.Context(), &models.Signature{
		ContractID:  contract.ID,
		SignerName:  input.SignerName,
		SignerEmail: input.SignerEmail,
		Signature:   input.Signature,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		slog.Error("Failed to create signature", "error", err, "contract_id", contract.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "签署合同失败"})
		return
	}

	updated, err := h.Store.UpdateContract(c.Request.Context(), contract.ID, map[string]any{
		"status": models.StatusSigned,
	})
	if err != nil {
		slog.Error("Failed to mark contract signed", "error", err, "contract_id", contract.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "签署合同失败"})
		return
	}

	h.audit(c, "SIGN_CONTRACT", "Contract", contract.ID, models.JSONMap{
		"signerEmail": input.SignerEmail,
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "合同签署成功", "signature": sig, "contract": updated})
}

// ListSignaturesHandler returns all signatures on one owned contract.
func (h *Handler) ListSignaturesHandler(c *gin.Context) {
	contract := h.getOwnedContract(c)
	if contract == nil {
		return
	}

	sigs, err := h.Store.FindSignaturesByContractID(c.Request.Context(), contract.ID)
	if err != nil {
		slog.Error("Failed to list signatures", "error", err, "contract_id", contract.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取签名记录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"signatures": sigs})
}

func updateKeys(updates map[string]any) []string {
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	return keys
}
