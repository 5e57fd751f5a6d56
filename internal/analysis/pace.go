package analysis

import (
	"math"

	"falaclara/internal/model"
)

// LowConfidenceThreshold is the recognizer confidence below which a word counts as unclear
const LowConfidenceThreshold = 0.6

// WordsPerMinute computes speaking pace from the first word's start to the last word's end.
// Empty input or a non-positive duration yields 0.
func WordsPerMinute(words []model.WordTiming) int {
	if len(words) == 0 {
		return 0
	}
	durationSec := float64(words[len(words)-1].EndMs-words[0].StartMs) / 1000
	if durationSec <= 0 {
		return 0
	}
	return int(math.Round(float64(len(words)) / durationSec * 60))
}

// LowConfidenceRate returns the percentage of words under LowConfidenceThreshold,
// rounded to one decimal place. Empty input yields 0.
func LowConfidenceRate(words []model.WordTiming) float64 {
	if len(words) == 0 {
		return 0
	}
	low := 0
	for _, w := range words {
		if w.Confidence < LowConfidenceThreshold {
			low++
		}
	}
	pct := float64(low) / float64(len(words)) * 100
	return math.Round(pct*10) / 10
}

// Analyze derives the metrics sent to the language model
func Analyze(job *model.TranscriptionJob, fillers []string) (model.SpeechMetrics, FillerCounts) {
	counts := CountFillers(job.Text, fillers)
	return model.SpeechMetrics{
		Transcript:               job.Text,
		WordsPerMinute:           WordsPerMinute(job.Words),
		LowConfidenceRatePercent: LowConfidenceRate(job.Words),
		FillerCount:              counts.Distinct(),
	}, counts
}
