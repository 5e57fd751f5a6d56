package stt

import (
	"context"
	"io"

	"falaclara/internal/model"
)

// Options are the recognition hints sent with a transcription request
type Options struct {
	Language    string
	SpeechModel string
	WordBoost   []string
}

// Client drives a remote transcription job from raw audio to a finished transcript
type Client interface {
	// Upload sends raw audio bytes and returns a handle the provider can read them back from
	Upload(ctx context.Context, audio io.Reader) (string, error)

	// Submit requests transcription of an uploaded file and returns the job id
	Submit(ctx context.Context, uploadURL string, opts Options) (string, error)

	// AwaitCompletion polls the job until it is completed, failed or the poll budget runs out
	AwaitCompletion(ctx context.Context, jobID string) (*model.TranscriptionJob, error)

	// Name returns the name of the provider (e.g., "assemblyai")
	Name() string
}
