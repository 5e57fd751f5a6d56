package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ProviderConfig selects and configures a language-model provider
type ProviderConfig struct {
	Provider string

	GeminiAPIKey      string
	GeminiURL         string
	GeminiModel       string
	GeminiCredentials string

	OpenAIKey   string
	OpenAIModel string

	CallTimeout time.Duration
}

// CreateProvider creates a provider based on configuration
func CreateProvider(cfg ProviderConfig) (Provider, error) {
	name := strings.ToLower(cfg.Provider)
	if name == "" {
		name = "gemini"
		log.Info().Msg("[LLM Factory] LLM_PROVIDER not set, defaulting to 'gemini'")
	}

	switch name {
	case "gemini":
		return NewGeminiProvider(GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			BaseURL:     cfg.GeminiURL,
			Model:       cfg.GeminiModel,
			Credentials: cfg.GeminiCredentials,
			CallTimeout: cfg.CallTimeout,
		})
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:      cfg.OpenAIKey,
			Model:       cfg.OpenAIModel,
			CallTimeout: cfg.CallTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Supported: gemini, openai", name)
	}
}
