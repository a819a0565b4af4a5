package ai

import (
	"context"
	"errors"
	"net"
	"strings"
)

const fallbackErrorMessage = "AI 服务暂时不可用，请稍后重试"

// NormalizeError maps provider failures onto the small set of user-facing
// messages. The raw error is for the server log; callers only ever see the
// normalized string.
func NormalizeError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoCredential) {
		return "未配置 AI API 密钥，请设置 DEEPSEEK_API_KEY 或 OPENAI_API_KEY"
	}
	if isTimeout(err) {
		return "AI 请求超时，请稍后重试"
	}

	msg := err.Error()
	var pe *providerError
	status := 0
	if errors.As(err, &pe) {
		status = pe.Status
	}

	switch {
	case strings.Contains(msg, "API key"):
		return "AI API 密钥无效或已过期"
	case strings.Contains(msg, "quota"):
		return "AI API 配额已用完，请检查账户余额"
	case status == 429 || strings.Contains(msg, "rate limit"):
		return "请求频率过高，请稍后重试"
	}

	if msg != "" {
		return msg
	}
	return fallbackErrorMessage
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// RetryableStatus reports the HTTP status the route layer should answer with
// for a normalized error message. Quota and rate-limit failures map to 429.
func RetryableStatus(message string) int {
	if strings.Contains(message, "频率过高") || strings.Contains(message, "配额已用完") {
		return 429
	}
	return 500
}
