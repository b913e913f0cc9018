package apiclient

import (
	"errors"
	"fmt"

	"github.com/vitalvas/forthecity/collection"
)

var (
	// ErrTransport is matched by errors whose request never produced a
	// response.
	ErrTransport = errors.New("apiclient: transport failure")

	// ErrLogicalFailure is matched by errors for responses classified as
	// a logical failure.
	ErrLogicalFailure = errors.New("apiclient: logical failure")

	// ErrNoTemplate is returned when a template was expected but the
	// document carries none.
	ErrNoTemplate = errors.New("apiclient: document has no template")

	// ErrInvalidConfig is returned by New and LoadConfig for unusable
	// configuration.
	ErrInvalidConfig = errors.New("apiclient: invalid config")
)

// Kind classifies an Error.
type Kind int

const (
	// KindRequest is a local error raised before any I/O.
	KindRequest Kind = iota + 1

	// KindTransport means no response was obtained.
	KindTransport

	// KindSchema means the body did not match the Collection+JSON shape.
	KindSchema

	// KindLogical means the response was classified as a failure.
	KindLogical

	// KindEmpty means a valid document had no items.
	KindEmpty
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	case KindSchema:
		return "schema"
	case KindLogical:
		return "logical"
	case KindEmpty:
		return "empty"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the failure value returned by client operations.
type Error struct {
	Kind Kind

	// Response is the response the failure relates to. Nil for
	// KindRequest.
	Response *Response

	// Failure is the collection.error object of a logical failure, when
	// the body carried one.
	Failure *collection.Error

	// Err is the underlying cause, if any.
	Err error
}

// Error describes the failure with its status and error document.
func (e *Error) Error() string {
	msg := "apiclient: " + e.Kind.String() + " error"

	if e.Response != nil && e.Response.TransportError == nil {
		msg += fmt.Sprintf(" (status %d)", e.Response.StatusCode)
	}

	if e.Failure != nil {
		msg += ": " + e.Failure.Title
		if e.Failure.Message != "" {
			msg += ": " + e.Failure.Message
		}
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches ErrTransport and ErrLogicalFailure by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrLogicalFailure:
		return e.Kind == KindLogical
	}

	return false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
