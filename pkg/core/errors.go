package core

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an application error.
type Kind string

const (
	// KindValidation marks user input outside a closed enumeration or an invalid field.
	KindValidation Kind = "validation"
	// KindNotFound marks a reference to a note id that does not exist.
	KindNotFound Kind = "not_found"
	// KindFormat marks a persisted record that cannot be decoded.
	KindFormat Kind = "format"
	// KindStorage marks an unreachable or corrupt backing store.
	KindStorage Kind = "storage"
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError creates a classified error with a message.
func NewError(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a classified error with a message and a cause.
func WrapError(kind Kind, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the kind of err. Unclassified errors are reported as storage
// failures since nothing above the repository can recover from them.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e.Kind != "" {
		return e.Kind
	}
	return KindStorage
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// MessageOf returns the message of a classified error, or err.Error() otherwise.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

func invalidValue(field, value string, allowed []string) error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("invalid %s '%s'. Allowed values: %s", field, value, strings.Join(allowed, ", ")),
	}
}

func notFound(id int) error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("note #%d not found", id),
	}
}

func formatError(format string, args ...any) error {
	return &Error{
		Kind:    KindFormat,
		Message: fmt.Sprintf(format, args...),
	}
}

// StorageError wraps an I/O or database failure.
func StorageError(op string, cause error) error {
	return &Error{
		Kind:    KindStorage,
		Message: fmt.Sprintf("%s: %v", op, cause),
		Err:     cause,
	}
}
