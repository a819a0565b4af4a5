package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/YTU94/ai-e-contract/internal/store"
	"github.com/YTU94/ai-e-contract/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type PendingContract struct {
	models.Contract
	DaysWaiting int `json:"daysWaiting"`
}

type CompletedContract struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	CompletedAt     time.Time `json:"completedAt"`
	SignaturesCount int       `json:"signaturesCount"`
	TotalValue      any       `json:"totalValue"`
}

// PendingContractsHandler lists PENDING contracts with the number of whole
// days each one has been waiting since creation.
func (h *Handler) PendingContractsHandler(c *gin.Context) {
	userID := currentUserID(c)
	skip, take := skipTake(c)

	contracts, err := h.Store.FindContractsByUserID(c.Request.Context(), userID, store.ContractQuery{
		Status: models.StatusPending,
		Skip:   skip,
		Take:   take,
	})
	if err != nil {
		slog.Error("Failed to list pending contracts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取待签署合同失败"})
		return
	}

	now := time.Now()
	pending := make([]PendingContract, 0, len(contracts))
	for _, contract := range contracts {
		pending = append(pending, PendingContract{
			Contract:    contract,
			DaysWaiting: int(now.Sub(contract.CreatedAt).Hours() / 24),
		})
	}

	total, err := h.Store.CountContracts(c.Request.Context(), userID, models.StatusPending)
	if err != nil {
		slog.Error("Failed to count pending contracts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取待签署合同失败"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, pending, total))
}

// CompletedContractsHandler lists COMPLETED contracts enriched with their
// signature count and completion time. Completion time is the newest
// signature's timestamp, falling back to the contract's last update.
func (h *Handler) CompletedContractsHandler(c *gin.Context) {
	userID := currentUserID(c)
	skip, take := skipTake(c)

	contracts, err := h.Store.FindContractsByUserID(c.Request.Context(), userID, store.ContractQuery{
		Status: models.StatusCompleted,
		Skip:   skip,
		Take:   take,
	})
	if err != nil {
		slog.Error("Failed to list completed contracts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取已完成合同失败"})
		return
	}

	completed := make([]CompletedContract, 0, len(contracts))
	for _, contract := range contracts {
		sigs, err := h.Store.FindSignaturesByContractID(c.Request.Context(), contract.ID)
		if err != nil {
			slog.Error("Failed to load signatures", "error", err, "contract_id", contract.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "获取已完成合同失败"})
			return
		}

		completedAt := contract.UpdatedAt
		if len(sigs) > 0 {
			sort.Slice(sigs, func(i, j int) bool { return sigs[i].SignedAt.After(sigs[j].SignedAt) })
			completedAt = sigs[0].SignedAt
		}

		var totalValue any
		if contract.Metadata != nil {
			totalValue = contract.Metadata["totalValue"]
		}

		completed = append(completed, CompletedContract{
			ID:              contract.ID,
			Title:           contract.Title,
			Type:            contract.Type,
			Status:          contract.Status,
			CompletedAt:     completedAt,
			SignaturesCount: len(sigs),
			TotalValue:      totalValue,
		})
	}

	total, err := h.Store.CountContracts(c.Request.Context(), userID, models.StatusCompleted)
	if err != nil {
		slog.Error("Failed to count completed contracts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取已完成合同失败"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, completed, total))
}

// PartnersHandler returns counterparty statistics derived from signatures.
// The stats are computed over the full set, then paginated in memory.
func (h *Handler) PartnersHandler(c *gin.Context) {
	userID := currentUserID(c)

	partners, err := h.Store.GetPartnerStats(c.Request.Context(), userID)
	if err != nil {
		slog.Error("Failed to compute partner stats", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取合作伙伴失败"})
		return
	}

	total := int64(len(partners))
	skip, take := skipTake(c)
	if skip > len(partners) {
		skip = len(partners)
	}
	end := skip + take
	if end > len(partners) {
		end = len(partners)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, partners[skip:end], total))
}

// ExportContractsHandler streams the caller's contracts as an xlsx workbook.
func (h *Handler) ExportContractsHandler(c *gin.Context) {
	userID := currentUserID(c)

	contracts, err := h.Store.FindContractsByUserID(c.Request.Context(), userID, store.ContractQuery{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	})
	if err != nil {
		slog.Error("Failed to export contracts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出合同失败"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headers := []string{"ID", "标题", "类型", "状态", "版本", "创建时间", "更新时间"}
	for i, head := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, head)
	}
	for row, contract := range contracts {
		values := []any{
			contract.ID,
			contract.Title,
			contract.Type,
			contract.Status,
			contract.Version,
			contract.CreatedAt.Format("2006-01-02 15:04:05"),
			contract.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	fileName := fmt.Sprintf("contracts-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		slog.Error("Failed to write xlsx export", "error", err)
	}
}
