package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/YTU94/ai-e-contract/internal/ai"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type AnalyzeInput struct {
	Content string `json:"content"`
}

type GenerateInput struct {
	Prompt       string `json:"prompt" binding:"required"`
	ContractType string `json:"contractType"`
}

type AITestInput struct {
	Prompt string `json:"prompt"`
}

type ChatInput struct {
	Messages []ai.ChatMessage `json:"messages"`
}

// AnalyzeContractHandler runs a risk and compliance review over raw
// contract text.
func (h *Handler) AnalyzeContractHandler(c *gin.Context) {
	var input AnalyzeInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "合同内容不能为空"})
		return
	}

	result := h.AI.AnalyzeContract(c.Request.Context(), input.Content)
	if !result.Success {
		c.JSON(ai.RetryableStatus(result.Error), gin.H{"error": result.Error})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GenerateContractHandler produces a full contract draft from a natural
// language description.
func (h *Handler) GenerateContractHandler(c *gin.Context) {
	var input GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "生成要求不能为空"})
		return
	}

	result := h.AI.GenerateContract(c.Request.Context(), input.ContractType, input.Prompt)
	if !result.Success {
		c.JSON(ai.RetryableStatus(result.Error), gin.H{"error": result.Error})
		return
	}
	c.JSON(http.StatusOK, result)
}

// AIChatHandler answers one turn of the contract assistant conversation.
func (h *Handler) AIChatHandler(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "消息不能为空"})
		return
	}

	result := h.AI.Chat(c.Request.Context(), input.Messages)
	if !result.Success {
		status := ai.RetryableStatus(result.Error)
		if strings.HasPrefix(result.Error, "无效的消息角色") {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": result.Error})
		return
	}
	c.JSON(http.StatusOK, result)
}

// StreamGenerateHandler upgrades to a websocket, reads one generation
// request, and forwards model output chunk by chunk as it arrives.
func (h *Handler) StreamGenerateHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	var input GenerateInput
	if err := conn.ReadJSON(&input); err != nil || input.Prompt == "" {
		conn.WriteJSON(gin.H{"type": "error", "error": "生成要求不能为空"})
		return
	}

	err = h.AI.StreamContractGeneration(c.Request.Context(), input.ContractType, input.Prompt, func(chunk string) error {
		return conn.WriteJSON(gin.H{"type": "chunk", "content": chunk})
	})
	if err != nil {
		conn.WriteJSON(gin.H{"type": "error", "error": ai.NormalizeError(err)})
		return
	}

	conn.WriteJSON(gin.H{"type": "done"})
}

// AITestHandler sends a short prompt to verify the configured provider
// responds. GET uses a built-in prompt, POST accepts a custom one.
func (h *Handler) AITestHandler(c *gin.Context) {
	prompt := ""
	if c.Request.Method == http.MethodPost {
		var input AITestInput
		if err := c.ShouldBindJSON(&input); err == nil {
			prompt = input.Prompt
		}
	}

	result := h.AI.TestConnection(c.Request.Context(), prompt)
	status := http.StatusOK
	if !result.Success {
		status = ai.RetryableStatus(result.Error)
	}
	c.JSON(status, result)
}

// AIPerformanceHandler measures per-call latency over a fixed prompt set.
func (h *Handler) AIPerformanceHandler(c *gin.Context) {
	result := h.AI.PerformanceTest(c.Request.Context())
	status := http.StatusOK
	if !result.Success {
		status = ai.RetryableStatus(result.Error)
	}
	c.JSON(status, result)
}

// AIInfoHandler reports which provider and model would serve requests.
func (h *Handler) AIInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.AI.GetInfo())
}
