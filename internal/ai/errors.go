package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrModelUnavailable = errors.New("language model unavailable")

// Reason tells a bad credential or exhausted quota apart from any other failure
type Reason int

const (
	ReasonGeneric Reason = iota
	ReasonCredential
)

// UnavailableError is returned when the model produced no candidate
type UnavailableError struct {
	Provider    string
	Reason      Reason
	StatusCode  int
	RawResponse string
	Err         error
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, ErrModelUnavailable)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.RawResponse != "" {
		msg = fmt.Sprintf("%s: %s", msg, truncateString(e.RawResponse, 500))
	}
	return msg
}

func (e *UnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrModelUnavailable}
	}
	return []error{ErrModelUnavailable, e.Err}
}

// classify maps a status code and body to a Reason
func classify(status int, body string) Reason {
	if strings.Contains(body, "API key not valid") {
		return ReasonCredential
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return ReasonCredential
	}
	return ReasonGeneric
}

const (
	NoAnswerMessage   = "Não foi possível obter resposta da IA."
	unavailablePrefix = "Diagnóstico indisponível: "
	credentialMessage = "API KEY inválida ou quota esgotada."
)

// Placeholder renders the user-facing text shown in place of a diagnosis after err
func Placeholder(providerName string, err error) string {
	var ue *UnavailableError
	if errors.As(err, &ue) && ue.Reason == ReasonCredential {
		return unavailablePrefix + credentialMessage
	}
	return unavailablePrefix + fmt.Sprintf("Falha ao consultar %s.", displayName(providerName))
}

func displayName(provider string) string {
	switch provider {
	case "gemini":
		return "Gemini"
	case "openai":
		return "OpenAI"
	case "":
		return "a IA"
	}
	return provider
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
