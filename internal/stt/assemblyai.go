package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"falaclara/internal/model"
)

const (
	defaultAssemblyAIURL = "https://api.assemblyai.com"
	defaultCallTimeout   = 30 * time.Second
)

// AssemblyAIClient implements Client against the AssemblyAI v2 REST API
type AssemblyAIClient struct {
	apiKey      string
	baseURL     string
	callTimeout time.Duration
	httpClient  *http.Client
	poller      *Poller
}

// AssemblyAIOption customizes an AssemblyAIClient
type AssemblyAIOption func(*AssemblyAIClient)

// WithBaseURL points the client at another host, e.g. a test server
func WithBaseURL(url string) AssemblyAIOption {
	return func(c *AssemblyAIClient) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithCallTimeout bounds every single HTTP request
func WithCallTimeout(d time.Duration) AssemblyAIOption {
	return func(c *AssemblyAIClient) {
		if d > 0 {
			c.callTimeout = d
		}
	}
}

// WithPoller replaces the default 3s x 30 poll budget
func WithPoller(p *Poller) AssemblyAIOption {
	return func(c *AssemblyAIClient) {
		if p != nil {
			c.poller = p
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) AssemblyAIOption {
	return func(c *AssemblyAIClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewAssemblyAIClient creates a new AssemblyAI transcription client
func NewAssemblyAIClient(apiKey string, opts ...AssemblyAIOption) *AssemblyAIClient {
	c := &AssemblyAIClient{
		apiKey:      apiKey,
		baseURL:     defaultAssemblyAIURL,
		callTimeout: defaultCallTimeout,
		httpClient:  &http.Client{},
		poller:      NewPoller(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// a fetch can take up to callTimeout, so the poll deadline must cover it
	if c.poller.FetchAllowance < c.callTimeout {
		c.poller.FetchAllowance = c.callTimeout
	}
	return c
}

// Name returns the provider name
func (c *AssemblyAIClient) Name() string {
	return "assemblyai"
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
	Error     string `json:"error,omitempty"`
}

type transcriptRequest struct {
	AudioURL     string   `json:"audio_url"`
	SpeechModel  string   `json:"speech_model,omitempty"`
	LanguageCode string   `json:"language_code,omitempty"`
	Punctuate    bool     `json:"punctuate"`
	FormatText   bool     `json:"format_text"`
	WordBoost    []string `json:"word_boost,omitempty"`
}

type transcriptResponse struct {
	ID     string             `json:"id"`
	Status string             `json:"status"`
	Text   *string            `json:"text"`
	Words  []model.WordTiming `json:"words"`
	Error  string             `json:"error,omitempty"`
}

// Upload streams raw audio to /v2/upload
func (c *AssemblyAIClient) Upload(ctx context.Context, audio io.Reader) (string, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/v2/upload", "application/octet-stream", audio)
	if err != nil {
		return "", &APIError{Kind: ErrUploadFailed, Err: err}
	}
	if status < 200 || status >= 300 {
		return "", &APIError{Kind: ErrUploadFailed, StatusCode: status, RawResponse: string(body)}
	}

	var resp uploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &APIError{Kind: ErrUploadFailed, StatusCode: status, RawResponse: string(body), Err: err}
	}
	if resp.UploadURL == "" {
		return "", &APIError{Kind: ErrUploadFailed, StatusCode: status, RawResponse: string(body)}
	}

	log.Info().Msg("[AssemblyAI] upload OK")
	return resp.UploadURL, nil
}

// Submit requests a transcript for an uploaded file
func (c *AssemblyAIClient) Submit(ctx context.Context, uploadURL string, opts Options) (string, error) {
	reqJSON, err := json.Marshal(transcriptRequest{
		AudioURL:     uploadURL,
		SpeechModel:  opts.SpeechModel,
		LanguageCode: opts.Language,
		Punctuate:    true,
		FormatText:   true,
		WordBoost:    opts.WordBoost,
	})
	if err != nil {
		return "", &APIError{Kind: ErrSubmitFailed, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	status, body, err := c.do(ctx, http.MethodPost, "/v2/transcript", "application/json", bytes.NewReader(reqJSON))
	if err != nil {
		return "", &APIError{Kind: ErrSubmitFailed, Err: err}
	}

	var resp transcriptResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.ID == "" {
		return "", &APIError{Kind: ErrSubmitFailed, StatusCode: status, RawResponse: string(body), Err: err}
	}

	log.Info().Str("job_id", resp.ID).Msg("[AssemblyAI] transcription requested")
	return resp.ID, nil
}

// Fetch reads the current state of a transcript job
func (c *AssemblyAIClient) Fetch(ctx context.Context, jobID string) (*model.TranscriptionJob, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/v2/transcript/"+jobID, "", nil)
	if err != nil {
		return nil, &APIError{Kind: ErrTranscriptionFailed, Err: err}
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Kind: ErrTranscriptionFailed, StatusCode: status, RawResponse: string(body)}
	}

	var resp transcriptResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &APIError{Kind: ErrTranscriptionFailed, StatusCode: status, RawResponse: string(body), Err: err}
	}

	job := &model.TranscriptionJob{
		ID:     resp.ID,
		Status: jobStatus(resp.Status),
		Words:  resp.Words,
		Error:  resp.Error,
	}
	if resp.Text != nil {
		job.Text = *resp.Text
	}
	if job.Status == model.JobFailed && job.Error == "" {
		job.Error = string(body)
	}
	return job, nil
}

// jobStatus maps AssemblyAI's status values onto JobStatus. The API reports a failed
// job as "error".
func jobStatus(s string) model.JobStatus {
	switch s {
	case "error":
		return model.JobFailed
	default:
		return model.JobStatus(s)
	}
}

// AwaitCompletion polls the job until it reaches a terminal status
func (c *AssemblyAIClient) AwaitCompletion(ctx context.Context, jobID string) (*model.TranscriptionJob, error) {
	job, err := c.poller.Wait(ctx, jobID, c.Fetch)
	if err != nil {
		return nil, err
	}
	log.Info().Str("job_id", jobID).Int("words", len(job.Words)).Msg("[AssemblyAI] transcription completed")
	return job, nil
}

func (c *AssemblyAIClient) do(ctx context.Context, method, path, contentType string, body io.Reader) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("authorization", c.apiKey)
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request to AssemblyAI: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).
		Str("preview", truncate(string(respBody), 500)).Msg("[AssemblyAI] response")
	return resp.StatusCode, respBody, nil
}
