package ai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Wire types for the OpenAI-compatible chat completions API that both
// DeepSeek and OpenAI expose.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// providerError keeps the HTTP status alongside the provider's message so
// error normalization can key on both.
type providerError struct {
	Status  int
	Message string
}

func (e *providerError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.Status, e.Message)
}

// generate issues exactly one non-streaming completion call for a single
// user prompt.
func (s *Service) generate(ctx context.Context, p *Provider, prompt string, maxTokens int, temperature float64) (string, error) {
	return s.complete(ctx, p, []chatMessage{{Role: "user", Content: prompt}}, maxTokens, temperature)
}

// complete is the non-streaming completion call over an arbitrary message
// history.
func (s *Service) complete(ctx context.Context, p *Provider, messages []chatMessage, maxTokens int, temperature float64) (string, error) {
	var out chatResponse
	var apiErr apiErrorBody

	resp, err := s.http.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(chatRequest{
			Model:       p.Model,
			Messages:    messages,
			MaxTokens:   maxTokens,
			Temperature: temperature,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post(p.BaseURL + "/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", &providerError{Status: resp.StatusCode(), Message: msg}
	}
	if len(out.Choices) == 0 {
		return "", &providerError{Status: resp.StatusCode(), Message: "provider returned no choices"}
	}
	return out.Choices[0].Message.Content, nil
}

// generateStream issues one streaming completion call and forwards decoded
// content deltas to onChunk. A non-nil error from onChunk stops the stream.
func (s *Service) generateStream(ctx context.Context, p *Provider, prompt string, maxTokens int, temperature float64, onChunk func(string) error) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(chatRequest{
			Model:       p.Model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			MaxTokens:   maxTokens,
			Temperature: temperature,
			Stream:      true,
		}).
		SetDoNotParseResponse(true).
		Post(p.BaseURL + "/chat/completions")
	if err != nil {
		return err
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(body, 4096))
		var apiErr apiErrorBody
		msg := resp.Status()
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return &providerError{Status: resp.StatusCode(), Message: msg}
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			return nil
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if err := onChunk(chunk.Choices[0].Delta.Content); err != nil {
			return err
		}
	}
	return scanner.Err()
}
