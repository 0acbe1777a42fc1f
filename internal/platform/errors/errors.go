package errors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindConfig      Kind = "config"
	KindBootstrap   Kind = "bootstrap"
	KindRecognition Kind = "recognition"
	KindDecision    Kind = "decision"
	KindTranslation Kind = "translation"
	KindSynthesis   Kind = "synthesis"
	KindTranscode   Kind = "transcode"
	KindTransport   Kind = "transport"
	KindUnknown     Kind = "unknown"
)

// Pipeline result taxonomy. These mark degraded outcomes, not faults: each
// one still leaves the request with a usable (possibly text-only) response.
// Only ErrNoSpeech aborts the chain.
var (
	ErrNoSpeech               = New(KindDecision, "decide", "no speech detected in either hypothesis")
	ErrTranslationUnavailable = New(KindTranslation, "route", "all translation providers failed")
	ErrSynthesisUnavailable   = New(KindSynthesis, "orchestrate", "all synthesis providers failed")
	ErrTranscodeUnavailable   = New(KindTranscode, "tempo", "tempo tool unavailable")
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

// IsKind checks whether any error in the chain matches the provided kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	for err != nil {
		if errors.As(err, &target) {
			return target.Kind == kind
		}
		err = errors.Unwrap(err)
	}
	return false
}
