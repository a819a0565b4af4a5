package ai

import (
	"errors"

	"github.com/YTU94/ai-e-contract/config"
)

// ErrNoCredential is raised before any network call when neither provider
// credential is configured.
var ErrNoCredential = errors.New("No AI API key configured. Please set DEEPSEEK_API_KEY or OPENAI_API_KEY")

// Provider is the resolved provider variant: name, model and endpoint travel
// together so no operation needs provider-specific branches.
type Provider struct {
	Name    string
	Model   string
	BaseURL string
	SDK     string

	apiKey string
}

// resolveProvider picks the provider in fixed priority order: DeepSeek first,
// then OpenAI. The config is immutable, so the answer is stable for the
// process lifetime even though this runs per call.
func resolveProvider(cfg *config.Config) (*Provider, error) {
	if cfg.DeepSeekAPIKey != "" {
		return &Provider{
			Name:    "deepseek",
			Model:   "deepseek-chat",
			BaseURL: cfg.DeepSeekBaseURL,
			SDK:     "resty/deepseek",
			apiKey:  cfg.DeepSeekAPIKey,
		}, nil
	}

	if cfg.OpenAIAPIKey != "" {
		return &Provider{
			Name:    "openai",
			Model:   "gpt-4o",
			BaseURL: cfg.OpenAIBaseURL,
			SDK:     "resty/openai",
			apiKey:  cfg.OpenAIAPIKey,
		}, nil
	}

	return nil, ErrNoCredential
}
