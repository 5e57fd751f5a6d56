package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"falaclara/internal/model"
)

type stubProvider struct {
	gen    *Generation
	err    error
	prompt string
}

func (s *stubProvider) Name() string { return "gemini" }

func (s *stubProvider) Generate(ctx context.Context, prompt string) (*Generation, error) {
	s.prompt = prompt
	return s.gen, s.err
}

func TestBuildDiagnosisPrompt(t *testing.T) {
	prompt := BuildDiagnosisPrompt(model.SpeechMetrics{
		Transcript:               "olá a todos",
		WordsPerMinute:           132,
		LowConfidenceRatePercent: 12.5,
		FillerCount:              3,
	})

	assert.True(t, strings.HasPrefix(prompt, "Você é um especialista em comunicação e oratória.\n"))
	assert.Contains(t, prompt, "- Transcrição: olá a todos\n")
	assert.Contains(t, prompt, "- Velocidade (palavras por minuto): 132\n")
	assert.Contains(t, prompt, "- Taxa de clareza (palavras com baixa confiança): 12.5\n")
	assert.Contains(t, prompt, "- Número de muletas detectadas: 3\n")
	assert.True(t, strings.HasSuffix(prompt, "sugira como a pessoa pode melhorar."))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "0.0", FormatRate(0))
	assert.Equal(t, "33.3", FormatRate(33.3))
	assert.Equal(t, "100.0", FormatRate(100))
}

func TestDiagnoser_Diagnose(t *testing.T) {
	p := &stubProvider{gen: &Generation{Text: "Boa fala."}}

	text, err := NewDiagnoser(p).Diagnose(context.Background(), model.SpeechMetrics{Transcript: "oi"})

	require.NoError(t, err)
	assert.Equal(t, "Boa fala.", text)
	assert.Contains(t, p.prompt, "- Transcrição: oi")
}

func TestDiagnoser_EmptyAnswer(t *testing.T) {
	p := &stubProvider{gen: &Generation{}}

	text, err := NewDiagnoser(p).Diagnose(context.Background(), model.SpeechMetrics{})

	require.NoError(t, err)
	assert.Equal(t, NoAnswerMessage, text)
}

func TestDiagnoser_Unavailable(t *testing.T) {
	p := &stubProvider{err: &UnavailableError{Provider: "gemini"}}

	_, err := NewDiagnoser(p).Diagnose(context.Background(), model.SpeechMetrics{})

	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t,
		"Diagnóstico indisponível: API KEY inválida ou quota esgotada.",
		Placeholder("gemini", &UnavailableError{Provider: "gemini", Reason: ReasonCredential}))
	assert.Equal(t,
		"Diagnóstico indisponível: Falha ao consultar Gemini.",
		Placeholder("gemini", &UnavailableError{Provider: "gemini"}))
	assert.Equal(t,
		"Diagnóstico indisponível: Falha ao consultar OpenAI.",
		Placeholder("openai", errors.New("connection reset")))
}

func TestCreateProvider(t *testing.T) {
	p, err := CreateProvider(ProviderConfig{GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	_, err = CreateProvider(ProviderConfig{Provider: "openai"})
	assert.Error(t, err)

	p, err = CreateProvider(ProviderConfig{Provider: "openai", OpenAIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = CreateProvider(ProviderConfig{Provider: "claude"})
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
