package ai

import (
	"fmt"
	"strconv"

	"falaclara/internal/model"
)

const diagnosisTemplate = `Você é um especialista em comunicação e oratória.
Avalie a fala de uma pessoa com base nestes dados:

- Transcrição: %s
- Velocidade (palavras por minuto): %s
- Taxa de clareza (palavras com baixa confiança): %s
- Número de muletas detectadas: %s

Diagnostique os principais problemas de comunicação e sugira como a pessoa pode melhorar.`

// BuildDiagnosisPrompt renders the diagnosis template for computed metrics
func BuildDiagnosisPrompt(m model.SpeechMetrics) string {
	return RenderDiagnosisPrompt(
		m.Transcript,
		strconv.Itoa(m.WordsPerMinute),
		FormatRate(m.LowConfidenceRatePercent),
		strconv.Itoa(m.FillerCount),
	)
}

// RenderDiagnosisPrompt fills the template with values exactly as the caller sent them
func RenderDiagnosisPrompt(transcript, wordsPerMinute, lowConfidenceRate, fillers string) string {
	return fmt.Sprintf(diagnosisTemplate, transcript, wordsPerMinute, lowConfidenceRate, fillers)
}

// FormatRate renders a percentage with one decimal, the way it is shown to the model
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64)
}
