package app

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Kind classifies a fatal error. Every kind ends the run with exit status 1.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfigMissing
	KindConfigInvalid
	KindLookupFailed
	KindStateFailed
	KindUpdateFailed
	KindLogFailed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConfigMissing:
		return "ConfigMissing"
	case KindConfigInvalid:
		return "ConfigInvalid"
	case KindLookupFailed:
		return "LookupFailed"
	case KindStateFailed:
		return "StateFailed"
	case KindUpdateFailed:
		return "UpdateFailed"
	case KindLogFailed:
		return "LogFailed"
	default:
		return "Unknown"
	}
}

// Error is a fatal error tagged with the step that produced it.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with kind. It returns nil for a nil err.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Message returns the log line for a fatal error.
func Message(err error) string {
	switch KindOf(err) {
	case KindConfigMissing:
		return fmt.Sprintf("Error: %v", err)
	case KindConfigInvalid:
		return fmt.Sprintf("Error reading config file: %v", err)
	case KindLookupFailed:
		return fmt.Sprintf("Error fetching IPv6 address: %v", err)
	case KindStateFailed:
		return fmt.Sprintf("Error accessing address cache: %v", err)
	case KindUpdateFailed:
		return fmt.Sprintf("Failed to update OVH DDNS: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// Report logs a fatal error and returns the process exit status for it.
func Report(logger logrus.FieldLogger, err error) int {
	if err == nil {
		return 0
	}
	logger.WithField("kind", KindOf(err).String()).Debug("run aborted")
	logger.Error(Message(err))
	return ExitCode(err)
}

// ExitCode maps err to the process exit status: 0 for nil, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
