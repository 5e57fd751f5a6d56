package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req geminiRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) &&
			assert.Len(t, req.Contents, 1) && assert.Len(t, req.Contents[0].Parts, 1) {
			assert.Equal(t, "avalie", req.Contents[0].Parts[0].Text)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestGeminiProvider_Generate(t *testing.T) {
	server := newGeminiTestServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"Fale mais devagar."}]}}]}`)
	defer server.Close()

	p, err := NewGeminiProvider(GeminiConfig{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	gen, err := p.Generate(context.Background(), "avalie")

	require.NoError(t, err)
	assert.Equal(t, "Fale mais devagar.", gen.Text)
	assert.JSONEq(t, `{"candidates":[{"content":{"parts":[{"text":"Fale mais devagar."}]}}]}`, string(gen.Raw))
}

func TestGeminiProvider_NoCandidates(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		reason Reason
	}{
		{
			name:   "invalid key",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
			reason: ReasonCredential,
		},
		{
			name:   "quota exhausted",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`,
			reason: ReasonCredential,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`,
			reason: ReasonGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newGeminiTestServer(t, tt.status, tt.body)
			defer server.Close()

			p, err := NewGeminiProvider(GeminiConfig{APIKey: "secret", BaseURL: server.URL})
			require.NoError(t, err)

			gen, err := p.Generate(context.Background(), "avalie")

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrModelUnavailable)
			var ue *UnavailableError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.reason, ue.Reason)
			assert.Equal(t, tt.status, ue.StatusCode)
			require.NotNil(t, gen)
			assert.JSONEq(t, tt.body, string(gen.Raw))
		})
	}
}

func TestGeminiProvider_EmptyCandidateList(t *testing.T) {
	server := newGeminiTestServer(t, http.StatusOK, `{"candidates":[]}`)
	defer server.Close()

	p, err := NewGeminiProvider(GeminiConfig{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	gen, err := p.Generate(context.Background(), "avalie")

	require.NoError(t, err)
	assert.Empty(t, gen.Text)
}

func TestGeminiProvider_MalformedCredentials(t *testing.T) {
	_, err := NewGeminiProvider(GeminiConfig{Credentials: "{not json"})
	assert.Error(t, err)
}
