package llm

import (
	"fmt"

	"github.com/sant0-9/mindppt/internal/config"
)

// NewProvider creates a provider from config. The credential is resolved
// here, at call time, so a missing key surfaces on first use as
// ErrMissingCredential rather than at startup.
func NewProvider(cfg *config.Config) (Provider, error) {
	info := config.GetProvider(cfg.Provider)
	if info == nil {
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
	model := cfg.Model
	if model == "" {
		model = info.DefaultModel
	}

	switch cfg.Provider {
	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, model), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCompatProvider("custom", cfg.BaseURL, cfg.Credential(), model), nil
	}

	key := cfg.Credential()
	if key == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingCredential)
	}

	switch cfg.Provider {
	case "zhipu":
		return NewCompatProvider("zhipu", baseURLOr(cfg.BaseURL, ZhipuBaseURL), key, model), nil

	case "openai":
		return NewCompatProvider("openai", baseURLOr(cfg.BaseURL, OpenAIBaseURL), key, model), nil

	case "groq":
		return NewCompatProvider("groq", baseURLOr(cfg.BaseURL, GroqBaseURL), key, model), nil

	case "openrouter":
		return NewCompatProvider("openrouter", baseURLOr(cfg.BaseURL, OpenRouterBaseURL), key, model), nil

	case "anthropic":
		p := NewAnthropicProvider(key, model)
		if cfg.BaseURL != "" {
			p.baseURL = cfg.BaseURL
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func baseURLOr(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}
