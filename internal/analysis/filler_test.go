package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountFillers(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		fillers    []string
		want       FillerCounts
	}{
		{
			name:       "case insensitive with punctuation",
			transcript: "Tipo, eu acho que tipo, sabe?",
			fillers:    []string{"tipo"},
			want:       FillerCounts{"tipo": 2},
		},
		{
			name:       "substring does not count",
			transcript: "Existem vários tipos de fala",
			fillers:    []string{"tipo"},
			want:       FillerCounts{},
		},
		{
			name:       "accented tokens",
			transcript: "Então, né, daí eu falei. NÉ?",
			fillers:    []string{"né", "então", "daí"},
			want:       FillerCounts{"né": 2, "então": 1, "daí": 1},
		},
		{
			name:       "accented token inside longer word",
			transcript: "tática e hummm",
			fillers:    []string{"tá", "hum"},
			want:       FillerCounts{},
		},
		{
			name:       "zero occurrences omitted",
			transcript: "ok ok",
			fillers:    []string{"ok", "bom"},
			want:       FillerCounts{"ok": 2},
		},
		{
			name:       "empty transcript",
			transcript: "",
			fillers:    DefaultFillers,
			want:       FillerCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountFillers(tt.transcript, tt.fillers))
		})
	}
}

func TestFillerCounts_DistinctNotTotal(t *testing.T) {
	counts := CountFillers("tipo tipo né", []string{"tipo", "né"})

	assert.Equal(t, 2, counts["tipo"])
	assert.Equal(t, 1, counts["né"])
	assert.Equal(t, 2, counts.Distinct())
}

func TestFillerCounts_Summary(t *testing.T) {
	counts := FillerCounts{"né": 1, "tipo": 3}

	assert.Equal(t, []string{"tipo: 3", "né: 1"}, counts.Summary(DefaultFillers))
}

func TestCountFillers_ReusesCompiledPatterns(t *testing.T) {
	CountFillers("tipo né", DefaultFillers)
	first := wordPattern("tipo")

	assert.Equal(t, FillerCounts{"tipo": 1, "né": 1}, CountFillers("Tipo, né?", DefaultFillers))
	assert.Same(t, first, wordPattern("tipo"))
}
