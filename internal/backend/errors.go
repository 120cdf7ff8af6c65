package backend

import (
	"errors"
	"fmt"
)

// Failure classes of a remote call. Every error returned by Client wraps
// exactly one of them.
var (
	// ErrTransport means no response was received: refused connection,
	// unknown host, timeout or cancelled context.
	ErrTransport = errors.New("transport failure")
	// ErrProtocolMismatch means a response arrived but with a non-2xx status
	// or a content type that is not JSON.
	ErrProtocolMismatch = errors.New("protocol mismatch")
	// ErrShapeMismatch means the body was JSON but did not decode into the
	// expected record shape or failed validation.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Kind names a failure class.
type Kind string

const (
	KindNone             Kind = ""
	KindTransport        Kind = "transport"
	KindProtocolMismatch Kind = "protocol"
	KindShapeMismatch    Kind = "shape"
	KindUnknown          Kind = "unknown"
)

// KindOf classifies err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrProtocolMismatch):
		return KindProtocolMismatch
	case errors.Is(err, ErrShapeMismatch):
		return KindShapeMismatch
	default:
		return KindUnknown
	}
}

// StatusError records a non-2xx response. It wraps ErrProtocolMismatch.
type StatusError struct {
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

func (e *StatusError) Unwrap() error { return ErrProtocolMismatch }
