// Package apperr defines the error taxonomy shared across services and
// handlers. Every failure that crosses a service boundary is wrapped in one
// of these kinds so handlers can map it to an HTTP status and callers can
// branch with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindConfiguration marks a required credential or setting that is
	// absent. Raised at constructor time, before any external call.
	KindConfiguration Kind = iota + 1
	// KindValidation marks bad input shape: non-positive price, missing
	// required image, malformed data URL.
	KindValidation
	// KindExternalCall marks a non-success response from a collaborator.
	KindExternalCall
	// KindRenderIncomplete marks a compositing pass that returned no image.
	KindRenderIncomplete
	// KindToolDenied marks an agent tool request outside the approved
	// namespace. Reported back into the agent loop, never raised from the
	// orchestrator itself.
	KindToolDenied
	// KindAgentIncomplete marks an agent stream that ended without a
	// terminal success message.
	KindAgentIncomplete
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration_missing"
	case KindValidation:
		return "validation_failure"
	case KindExternalCall:
		return "external_call_failure"
	case KindRenderIncomplete:
		return "render_incomplete"
	case KindToolDenied:
		return "tool_denied"
	case KindAgentIncomplete:
		return "agent_run_incomplete"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Is lets errors.Is match on kind via the kind sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.msg == "" && t.err == nil && t.Kind == e.Kind
}

// Kind sentinels for errors.Is checks.
var (
	ErrConfiguration    = &Error{Kind: KindConfiguration}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrExternalCall     = &Error{Kind: KindExternalCall}
	ErrRenderIncomplete = &Error{Kind: KindRenderIncomplete}
	ErrToolDenied       = &Error{Kind: KindToolDenied}
	ErrAgentIncomplete  = &Error{Kind: KindAgentIncomplete}
)

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error. The cause stays reachable
// through errors.Unwrap.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

func Configurationf(format string, args ...any) *Error {
	return New(KindConfiguration, format, args...)
}

func Validationf(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func ExternalCallf(err error, format string, args ...any) *Error {
	return Wrap(KindExternalCall, err, format, args...)
}

// KindOf extracts the kind from any error in the chain, or zero.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
