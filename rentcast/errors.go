package rentcast

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrTimeout is matched (errors.Is) by any request that ran out of time.
var ErrTimeout = errors.New("rentcast request timed out")

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rentcast returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError covers everything between us and a usable response: DNS,
// connection failures, truncated or malformed bodies.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

type timeoutError struct {
	err error
}

func (e *timeoutError) Error() string        { return e.err.Error() }
func (e *timeoutError) Unwrap() error        { return e.err }
func (e *timeoutError) Is(target error) bool { return target == ErrTimeout }

func classify(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &timeoutError{err: err}
	}
	return &TransportError{Err: err}
}
