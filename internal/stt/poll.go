package stt

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"falaclara/internal/model"
)

const (
	DefaultPollInterval    = 3 * time.Second
	DefaultPollMaxAttempts = 30

	// DefaultFetchAllowance is the latency budgeted per status fetch on top of Interval
	DefaultFetchAllowance = defaultCallTimeout
)

// FetchFunc returns the current snapshot of a job
type FetchFunc func(ctx context.Context, jobID string) (*model.TranscriptionJob, error)

// Poller waits for a job to reach a terminal status. It sleeps one Interval before every
// fetch and gives up after MaxAttempts fetches. The deadline
// MaxAttempts*(Interval+FetchAllowance) is only a ceiling for fetches that overrun
// their allowance.
type Poller struct {
	Interval       time.Duration
	MaxAttempts    int
	FetchAllowance time.Duration

	// Sleep and Now are swappable so tests do not wait on the wall clock
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
}

// NewPoller returns a poller with the default 3s x 30 budget
func NewPoller() *Poller {
	return &Poller{
		Interval:       DefaultPollInterval,
		MaxAttempts:    DefaultPollMaxAttempts,
		FetchAllowance: DefaultFetchAllowance,
		Sleep:          sleepContext,
		Now:            time.Now,
	}
}

// Wait polls fetch until the job completes. A failed job is ErrTranscriptionFailed and an
// exhausted budget is ErrTimeout.
func (p *Poller) Wait(ctx context.Context, jobID string, fetch FetchFunc) (*model.TranscriptionJob, error) {
	sleep, now := p.Sleep, p.Now
	if sleep == nil {
		sleep = sleepContext
	}
	if now == nil {
		now = time.Now
	}

	deadline := now().Add((p.Interval + p.FetchAllowance) * time.Duration(p.MaxAttempts))
	var last *model.TranscriptionJob
	attempts := 0

	for attempts < p.MaxAttempts {
		attempts++
		if err := sleep(ctx, p.Interval); err != nil {
			return nil, &APIError{Kind: ErrTranscriptionFailed, Err: fmt.Errorf("polling cancelled: %w", err)}
		}

		job, err := fetch(ctx, jobID)
		if err != nil {
			return nil, err
		}
		last = job

		log.Debug().Str("job_id", jobID).Int("attempt", attempts).Str("status", string(job.Status)).Msg("[STT Poll] job status")

		switch job.Status {
		case model.JobCompleted:
			return job, nil
		case model.JobFailed:
			return job, &APIError{Kind: ErrTranscriptionFailed, RawResponse: job.Error}
		}

		if attempts < p.MaxAttempts && !now().Before(deadline) {
			log.Warn().Str("job_id", jobID).Int("attempt", attempts).Msg("[STT Poll] deadline passed")
			break
		}
	}

	status := "unknown"
	if last != nil {
		status = string(last.Status)
	}
	return last, &APIError{Kind: ErrTimeout, Err: fmt.Errorf("job %s still %s after %d attempts", jobID, status, attempts)}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
