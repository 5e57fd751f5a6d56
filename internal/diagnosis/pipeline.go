package diagnosis

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"falaclara/internal/ai"
	"falaclara/internal/analysis"
	"falaclara/internal/model"
	"falaclara/internal/repository"
	"falaclara/internal/stt"
)

// State is a step of one pipeline run. Runs only move forward.
type State string

const (
	StateReceived    State = "received"
	StateUploaded    State = "uploaded"
	StateSubmitted   State = "submitted"
	StatePolling     State = "polling"
	StateTranscribed State = "transcribed"
	StateAnalyzed    State = "analyzed"
	StateDiagnosed   State = "diagnosed"
	StatePersisted   State = "persisted"
	StateCompleted   State = "completed"
	StateAborted     State = "aborted"
)

// AudioSource is the temporary backing store of an uploaded recording
type AudioSource interface {
	Open() (io.ReadCloser, error)
	Release() error
}

// Submission is one request to diagnose a recording
type Submission struct {
	Audio  AudioSource
	UserID string
}

// Diagnoser produces the narrative for computed metrics
type Diagnoser interface {
	Diagnose(ctx context.Context, m model.SpeechMetrics) (string, error)
	Name() string
}

// Pipeline runs upload, transcription, analysis, diagnosis and bio persistence in order
type Pipeline struct {
	stt         stt.Client
	diagnoser   Diagnoser
	users       repository.UserRepository
	fillers     []string
	language    string
	speechModel string
	observer    func(from, to State)
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithFillers replaces the filler list used for word boost and counting
func WithFillers(fillers []string) Option {
	return func(p *Pipeline) { p.fillers = fillers }
}

// WithLanguage sets the transcription language code
func WithLanguage(code string) Option {
	return func(p *Pipeline) {
		if code != "" {
			p.language = code
		}
	}
}

// WithSpeechModel sets the transcription model
func WithSpeechModel(name string) Option {
	return func(p *Pipeline) {
		if name != "" {
			p.speechModel = name
		}
	}
}

// WithObserver registers a callback invoked on every state transition
func WithObserver(fn func(from, to State)) Option {
	return func(p *Pipeline) { p.observer = fn }
}

// NewPipeline creates a pipeline over its collaborators
func NewPipeline(client stt.Client, diagnoser Diagnoser, users repository.UserRepository, opts ...Option) *Pipeline {
	p := &Pipeline{
		stt:         client,
		diagnoser:   diagnoser,
		users:       users,
		fillers:     analysis.DefaultFillers,
		language:    "pt",
		speechModel: "universal",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type run struct {
	p        *Pipeline
	state    State
	audio    AudioSource
	released bool
	log      zerolog.Logger
}

func (r *run) to(next State) {
	r.log.Debug().Str("from", string(r.state)).Str("to", string(next)).Msg("[Diagnosis] transition")
	if r.p.observer != nil {
		r.p.observer(r.state, next)
	}
	r.state = next
}

func (r *run) release() {
	if r.audio == nil || r.released {
		return
	}
	r.released = true
	if err := r.audio.Release(); err != nil {
		r.log.Warn().Err(err).Msg("[Diagnosis] failed to release temporary audio")
	}
}

func (r *run) abort(kind Kind, msg string, err error) error {
	failed := r.state
	r.release()
	r.to(StateAborted)
	ev := r.log.Error()
	if kind == KindInvalidInput {
		ev = r.log.Warn()
	}
	ev.Err(err).Str("state", string(failed)).Msg("[Diagnosis] " + msg)
	return &Error{Kind: kind, State: failed, Message: msg, Err: err}
}

// Run diagnoses one submission. Transcription failures abort the run with *Error;
// diagnosis and persistence failures only degrade the result. The submission's audio
// is released exactly once before Run returns.
func (p *Pipeline) Run(ctx context.Context, sub Submission) (*model.DiagnosisResult, error) {
	r := &run{
		p:     p,
		state: StateReceived,
		audio: sub.Audio,
		log:   log.With().Str("component", "diagnosis").Str("user_id", sub.UserID).Logger(),
	}
	defer r.release()

	if sub.Audio == nil {
		return nil, r.abort(KindInvalidInput, MsgMissingAudio, nil)
	}
	if strings.TrimSpace(sub.UserID) == "" {
		return nil, r.abort(KindInvalidInput, MsgMissingUser, nil)
	}

	uploadURL, err := p.upload(ctx, sub.Audio)
	if err != nil {
		return nil, r.abort(KindTranscription, MsgUploadFailed, err)
	}
	r.to(StateUploaded)

	jobID, err := p.stt.Submit(ctx, uploadURL, stt.Options{
		Language:    p.language,
		SpeechModel: p.speechModel,
		WordBoost:   p.fillers,
	})
	if err != nil {
		return nil, r.abort(KindTranscription, MsgSubmitFailed, err)
	}
	r.to(StateSubmitted)

	r.to(StatePolling)
	job, err := p.stt.AwaitCompletion(ctx, jobID)
	if err != nil {
		return nil, r.abort(KindTranscription, MsgPollingFailed, err)
	}
	r.to(StateTranscribed)

	metrics, counts := analysis.Analyze(job, p.fillers)
	r.log.Info().
		Int("wpm", metrics.WordsPerMinute).
		Float64("low_confidence_rate", metrics.LowConfidenceRatePercent).
		Strs("fillers", counts.Summary(p.fillers)).
		Msg("[Diagnosis] speech analyzed")
	r.to(StateAnalyzed)

	text, err := p.diagnoser.Diagnose(ctx, metrics)
	if err != nil {
		r.log.Error().Err(err).Str("provider", p.diagnoser.Name()).Msg("[Diagnosis] language model failed, using placeholder")
		text = ai.Placeholder(p.diagnoser.Name(), err)
	}
	r.to(StateDiagnosed)

	p.persist(ctx, r, sub.UserID, metrics.Transcript)
	r.to(StatePersisted)

	r.release()
	r.to(StateCompleted)

	return &model.DiagnosisResult{
		Transcript:    job.Text,
		DiagnosisText: text,
	}, nil
}

func (p *Pipeline) upload(ctx context.Context, audio AudioSource) (string, error) {
	rc, err := audio.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return p.stt.Upload(ctx, rc)
}

// persist appends the transcript to the user's biography. Failures are logged only.
func (p *Pipeline) persist(ctx context.Context, r *run, userID, transcript string) {
	if p.users == nil {
		return
	}
	current, err := p.users.GetBio(ctx, userID)
	if err != nil {
		r.log.Error().Err(err).Msg("[Diagnosis] failed to read user bio")
		return
	}
	if err := p.users.SetBio(ctx, userID, AppendPresentation(current, transcript)); err != nil {
		r.log.Error().Err(err).Msg("[Diagnosis] failed to update user bio")
	}
}
