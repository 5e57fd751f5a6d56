package stt

import (
	"errors"
	"fmt"
)

var (
	ErrUploadFailed        = errors.New("audio upload failed")
	ErrSubmitFailed        = errors.New("transcription request failed")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrTimeout             = errors.New("timed out waiting for transcription")
)

// APIError describes a failed call to the transcription provider.
// Kind is one of the Err* sentinels; RawResponse keeps the body for diagnostics.
type APIError struct {
	Kind        error
	StatusCode  int
	RawResponse string
	Err         error
}

func (e *APIError) Error() string {
	msg := e.Kind.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.RawResponse != "" {
		msg = fmt.Sprintf("%s: %s", msg, truncate(e.RawResponse, 500))
	}
	return msg
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
