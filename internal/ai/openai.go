package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using the chat completions API
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	callTimeout time.Duration
}

// OpenAIConfig configures an OpenAIProvider
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	CallTimeout time.Duration
	HTTPClient  *http.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}
	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		callTimeout: cfg.CallTimeout,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Generate sends prompt as a single user message
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (*Generation, error) {
	ctx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	log.Debug().Str("model", p.model).Int("prompt_len", len(prompt)).Msg("[OpenAI] calling chat completion")
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return nil, openAIUnavailable(err)
	}

	gen := &Generation{}
	if raw, err := json.Marshal(resp); err == nil {
		gen.Raw = raw
	}

	log.Debug().Int("choices", len(resp.Choices)).Int("total_tokens", resp.Usage.TotalTokens).Msg("[OpenAI] response received")
	if len(resp.Choices) == 0 {
		return gen, &UnavailableError{Provider: p.Name(), RawResponse: string(gen.Raw)}
	}

	gen.Text = resp.Choices[0].Message.Content
	return gen, nil
}

func openAIUnavailable(err error) error {
	ue := &UnavailableError{Provider: "openai", Err: fmt.Errorf("OpenAI API error: %w", err)}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		ue.StatusCode = apiErr.HTTPStatusCode
		ue.Reason = classify(apiErr.HTTPStatusCode, apiErr.Message)
	case errors.As(err, &reqErr):
		ue.StatusCode = reqErr.HTTPStatusCode
		ue.Reason = classify(reqErr.HTTPStatusCode, "")
	}
	return ue
}
