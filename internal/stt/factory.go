package stt

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ProviderConfig is the subset of configuration the transcription client needs
type ProviderConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	CallTimeout time.Duration
}

// CreateClient creates a transcription client for the configured provider
func CreateClient(cfg ProviderConfig) (Client, error) {
	name := strings.ToLower(cfg.Provider)
	if name == "" {
		name = "assemblyai"
	}

	switch name {
	case "assemblyai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("ASSEMBLYAI_API_KEY is not set")
		}
		log.Info().Str("base_url", cfg.BaseURL).Msg("[STT Factory] creating AssemblyAI client")
		return NewAssemblyAIClient(cfg.APIKey, WithBaseURL(cfg.BaseURL), WithCallTimeout(cfg.CallTimeout)), nil
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: assemblyai", name)
	}
}
