package model

// JobStatus is the state of a transcription job as reported by the provider
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Terminal reports whether the provider will no longer change the job
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// WordTiming is a single recognized word. Times are milliseconds from the start of the audio.
type WordTiming struct {
	Text       string  `json:"text"`
	StartMs    int64   `json:"start"`
	EndMs      int64   `json:"end"`
	Confidence float64 `json:"confidence"`
}

// TranscriptionJob is a snapshot of an external transcription job
type TranscriptionJob struct {
	ID     string       `json:"id"`
	Status JobStatus    `json:"status"`
	Text   string       `json:"text"`
	Words  []WordTiming `json:"words"`
	Error  string       `json:"error,omitempty"`
}

// SpeechMetrics are the numbers derived from a completed transcript
type SpeechMetrics struct {
	Transcript               string  `json:"transcript"`
	WordsPerMinute           int     `json:"wordsPerMinute"`
	LowConfidenceRatePercent float64 `json:"lowConfidenceRate"`
	FillerCount              int     `json:"muletas"`
}

// DiagnosisResult is what the caller of the diagnosis pipeline receives
type DiagnosisResult struct {
	Transcript    string `json:"transcricao"`
	DiagnosisText string `json:"diagnostico"`
}
