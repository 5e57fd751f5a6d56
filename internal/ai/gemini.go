package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultGeminiURL   = "https://generativelanguage.googleapis.com"
	defaultGeminiModel = "gemini-2.0-flash"
	geminiScope        = "https://www.googleapis.com/auth/generative-language"
)

// GeminiProvider implements Provider using the Generative Language REST API
type GeminiProvider struct {
	apiKey      string
	baseURL     string
	model       string
	callTimeout time.Duration
	httpClient  *http.Client
}

// GeminiConfig configures a GeminiProvider. Either APIKey or Credentials must be set.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Credentials is a service account key: a JSON string or a path to a JSON file
	Credentials string
	CallTimeout time.Duration
	HTTPClient  *http.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(cfg GeminiConfig) (*GeminiProvider, error) {
	p := &GeminiProvider{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		callTimeout: cfg.CallTimeout,
		httpClient:  cfg.HTTPClient,
	}
	if p.baseURL == "" {
		p.baseURL = defaultGeminiURL
	}
	if p.model == "" {
		p.model = defaultGeminiModel
	}
	if p.callTimeout <= 0 {
		p.callTimeout = 30 * time.Second
	}

	if p.httpClient == nil {
		if p.apiKey != "" {
			log.Info().Msg("[Gemini] using API key authentication")
			p.httpClient = &http.Client{}
		} else {
			hc, err := credentialsClient(strings.TrimSpace(cfg.Credentials))
			if err != nil {
				return nil, err
			}
			log.Info().Msg("[Gemini] using service account authentication")
			p.httpClient = hc
		}
	}
	return p, nil
}

// credentialsClient builds an oauth2 client from a JSON key, a key file, or the default credentials
func credentialsClient(keyData string) (*http.Client, error) {
	ctx := context.Background()

	if keyData == "" {
		creds, err := google.FindDefaultCredentials(ctx, geminiScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w. Please set GEMINI_API_KEY or GEMINI_CREDENTIALS_FILE", err)
		}
		return oauth2.NewClient(ctx, creds.TokenSource), nil
	}

	jsonData := []byte(keyData)
	if !strings.HasPrefix(keyData, "{") {
		var err error
		jsonData, err = os.ReadFile(keyData)
		if err != nil {
			return nil, fmt.Errorf("failed to read key file '%s': %w", keyData, err)
		}
	}

	creds, err := google.CredentialsFromJSON(ctx, jsonData, geminiScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create credentials from JSON: %w", err)
	}
	return oauth2.NewClient(ctx, creds.TokenSource), nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Generate calls models/{model}:generateContent with a single-turn prompt
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (*Generation, error) {
	reqJSON, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, p.model)
	if p.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(p.apiKey)
	}

	ctx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug().Str("model", p.model).Int("prompt_len", len(prompt)).Msg("[Gemini] calling generateContent")
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &UnavailableError{Provider: p.Name(), Err: fmt.Errorf("failed to send request to Gemini: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Provider: p.Name(), StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	gen := &Generation{}
	if json.Valid(body) {
		gen.Raw = json.RawMessage(body)
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return gen, &UnavailableError{
			Provider:    p.Name(),
			Reason:      classify(resp.StatusCode, string(body)),
			StatusCode:  resp.StatusCode,
			RawResponse: string(body),
			Err:         fmt.Errorf("failed to parse Gemini response: %w", err),
		}
	}

	if gr.Candidates == nil {
		log.Warn().Int("status", resp.StatusCode).Str("body", truncateString(string(body), 500)).Msg("[Gemini] no candidates returned")
		return gen, &UnavailableError{
			Provider:    p.Name(),
			Reason:      classify(resp.StatusCode, string(body)),
			StatusCode:  resp.StatusCode,
			RawResponse: string(body),
		}
	}

	if len(gr.Candidates) > 0 && len(gr.Candidates[0].Content.Parts) > 0 {
		gen.Text = gr.Candidates[0].Content.Parts[0].Text
	}
	log.Info().Int("text_len", len(gen.Text)).Msg("[Gemini] diagnosis received")
	return gen, nil
}
