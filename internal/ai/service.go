// Package ai wraps the hosted LLM providers behind task-specific operations.
// Every operation is a single stateless request/response; there is no retry
// loop, no backoff and no circuit breaker here by design.
package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/YTU94/ai-e-contract/config"

	"github.com/go-resty/resty/v2"
)

// Service selects a provider per call (from immutable config, so the order
// is stable), assembles the prompt and issues exactly one generation call.
type Service struct {
	cfg  *config.Config
	http *resty.Client
}

func New(cfg *config.Config) *Service {
	client := resty.New().
		SetTimeout(cfg.AITimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Service{cfg: cfg, http: client}
}

// AnalysisResult is the tagged outcome of AnalyzeContract. Operations return
// result structs instead of errors so callers never handle provider-specific
// failure types.
type AnalysisResult struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

type GenerationResult struct {
	Success  bool   `json:"success"`
	Contract string `json:"contract,omitempty"`
	Error    string `json:"error,omitempty"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// ChatMessage is one turn of the assistant conversation as submitted by the
// client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResult struct {
	Success  bool   `json:"success"`
	Reply    string `json:"reply,omitempty"`
	Error    string `json:"error,omitempty"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

type TestResult struct {
	Success  bool   `json:"success"`
	Result   string `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

type PerfCall struct {
	Prompt       string `json:"prompt"`
	Response     string `json:"response"`
	ResponseTime int64  `json:"responseTime"`
}

type PerfResult struct {
	Success     bool       `json:"success"`
	Provider    string     `json:"provider,omitempty"`
	Model       string     `json:"model,omitempty"`
	TotalTime   int64      `json:"totalTime,omitempty"`
	AverageTime float64    `json:"averageTime,omitempty"`
	Results     []PerfCall `json:"results,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type Info struct {
	Available  bool   `json:"available"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	SDKVersion string `json:"sdkVersion,omitempty"`
	Error      string `json:"error,omitempty"`
}

// AnalyzeContract runs the structured contract analysis prompt.
func (s *Service) AnalyzeContract(ctx context.Context, contractContent string) AnalysisResult {
	p, err := resolveProvider(s.cfg)
	if err != nil {
		return AnalysisResult{Success: false, Error: NormalizeError(err)}
	}

	text, err := s.generate(ctx, p, analysisPrompt(contractContent), 2000, 0.7)
	if err != nil {
		slog.Error("AI analysis error", "provider", p.Name, "error", err)
		return AnalysisResult{Success: false, Error: NormalizeError(err)}
	}

	return AnalysisResult{
		Success:  true,
		Analysis: text,
		Provider: p.Name,
		Model:    p.Model,
	}
}

// GenerateContract produces a full contract skeleton for the given type and
// free-text requirements.
func (s *Service) GenerateContract(ctx context.Context, contractType, requirements string) GenerationResult {
	p, err := resolveProvider(s.cfg)
	if err != nil {
		return GenerationResult{Success: false, Error: NormalizeError(err)}
	}

	text, err := s.generate(ctx, p, generationPrompt(contractType, requirements), 3000, 0.7)
	if err != nil {
		slog.Error("Contract generation error", "provider", p.Name, "error", err)
		return GenerationResult{Success: false, Error: NormalizeError(err)}
	}

	return GenerationResult{
		Success:  true,
		Contract: text,
		Provider: p.Name,
		Model:    p.Model,
	}
}

// Chat runs one turn of the contract assistant over the submitted history.
// The domain system prompt is prepended server-side; clients only ever send
// user and assistant turns.
func (s *Service) Chat(ctx context.Context, messages []ChatMessage) ChatResult {
	if len(messages) == 0 {
		return ChatResult{Success: false, Error: "消息不能为空"}
	}
	for _, m := range messages {
		if m.Role != "user" && m.Role != "assistant" {
			return ChatResult{Success: false, Error: "无效的消息角色: " + m.Role}
		}
	}

	p, err := resolveProvider(s.cfg)
	if err != nil {
		return ChatResult{Success: false, Error: NormalizeError(err)}
	}

	history := make([]chatMessage, 0, len(messages)+1)
	history = append(history, chatMessage{Role: "system", Content: chatSystemPrompt})
	for _, m := range messages {
		history = append(history, chatMessage{Role: m.Role, Content: m.Content})
	}

	text, err := s.complete(ctx, p, history, 2000, 0.2)
	if err != nil {
		slog.Error("AI chat error", "provider", p.Name, "error", err)
		return ChatResult{Success: false, Error: NormalizeError(err)}
	}

	return ChatResult{
		Success:  true,
		Reply:    text,
		Provider: p.Name,
		Model:    p.Model,
	}
}

// StreamContractGeneration is the incremental variant of GenerateContract.
// The caller forwards chunks to its own transport. A credential problem is
// reported before any network traffic.
func (s *Service) StreamContractGeneration(ctx context.Context, contractType, requirements string, onChunk func(string) error) error {
	p, err := resolveProvider(s.cfg)
	if err != nil {
		return err
	}
	return s.generateStream(ctx, p, streamGenerationPrompt(contractType, requirements), 3000, 0.7, onChunk)
}

// TestConnection issues one short health-check call. An empty prompt selects
// the default.
func (s *Service) TestConnection(ctx context.Context, customPrompt string) TestResult {
	p, err := resolveProvider(s.cfg)
	if err != nil {
		return TestResult{Success: false, Error: NormalizeError(err)}
	}

	prompt := customPrompt
	if prompt == "" {
		prompt = defaultTestPrompt
	}

	text, err := s.generate(ctx, p, prompt, 150, 0.7)
	if err != nil {
		slog.Error("AI test error", "provider", p.Name, "error", err)
		return TestResult{Success: false, Error: NormalizeError(err)}
	}

	return TestResult{
		Success:  true,
		Result:   text,
		Provider: p.Name,
		Model:    p.Model,
	}
}

// PerformanceTest issues three fixed short prompts sequentially, each awaited
// before the next, to measure realistic round-trip latency rather than
// batched throughput. Do not parallelize.
func (s *Service) PerformanceTest(ctx context.Context) PerfResult {
	p, err := resolveProvider(s.cfg)
	if err != nil {
		return PerfResult{Success: false, Error: NormalizeError(err)}
	}

	start := time.Now()
	results := make([]PerfCall, 0, len(performancePrompts))

	for _, prompt := range performancePrompts {
		callStart := time.Now()
		text, err := s.generate(ctx, p, prompt, 100, 0.7)
		if err != nil {
			slog.Error("Performance test error", "provider", p.Name, "error", err)
			return PerfResult{Success: false, Error: NormalizeError(err)}
		}
		results = append(results, PerfCall{
			Prompt:       prompt,
			Response:     text,
			ResponseTime: time.Since(callStart).Milliseconds(),
		})
	}

	total := time.Since(start).Milliseconds()
	return PerfResult{
		Success:     true,
		Provider:    p.Name,
		Model:       p.Model,
		TotalTime:   total,
		AverageTime: float64(total) / float64(len(performancePrompts)),
		Results:     results,
	}
}

// GetInfo inspects which provider would be selected without any network
// call. It never fails; missing credentials surface as Available=false.
func (s *Service) GetInfo() Info {
	p, err := resolveProvider(s.cfg)
	if err != nil {
		return Info{
			Available: false,
			Provider:  "none",
			Model:     "N/A",
			Error:     NormalizeError(err),
		}
	}
	return Info{
		Available:  true,
		Provider:   p.Name,
		Model:      p.Model,
		SDKVersion: p.SDK,
	}
}
