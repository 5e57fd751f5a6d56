package ai

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"falaclara/internal/model"
)

// Diagnoser turns speech metrics into narrative feedback
type Diagnoser struct {
	provider Provider
}

// NewDiagnoser creates a Diagnoser backed by provider
func NewDiagnoser(provider Provider) *Diagnoser {
	return &Diagnoser{provider: provider}
}

// Name returns the name of the underlying provider
func (d *Diagnoser) Name() string {
	return d.provider.Name()
}

// Diagnose asks the model for a diagnosis of m. An answer without text is reported as
// NoAnswerMessage rather than an error; only a missing candidate list fails.
func (d *Diagnoser) Diagnose(ctx context.Context, m model.SpeechMetrics) (string, error) {
	gen, err := d.provider.Generate(ctx, BuildDiagnosisPrompt(m))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(gen.Text) == "" {
		log.Warn().Str("provider", d.provider.Name()).Msg("[Diagnoser] empty answer from model")
		return NoAnswerMessage, nil
	}
	return gen.Text, nil
}
