package diagnosis

import "fmt"

// Kind separates caller faults from transcription faults
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindTranscription
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindTranscription:
		return "transcription"
	}
	return "unknown"
}

// User-facing messages, one per abort cause
const (
	MsgMissingAudio  = "Arquivo de áudio não enviado."
	MsgMissingUser   = "usuarioId não enviado."
	MsgUploadFailed  = "Falha ao enviar áudio para AssemblyAI."
	MsgSubmitFailed  = "Falha ao solicitar transcrição."
	MsgPollingFailed = "Falha ao obter transcrição."
)

// Error is an aborted pipeline run
type Error struct {
	Kind    Kind
	State   State // state the run was in when it aborted
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("diagnosis aborted in %s: %s: %v", e.State, e.Message, e.Err)
	}
	return fmt.Sprintf("diagnosis aborted in %s: %s", e.State, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
