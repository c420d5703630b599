// Package netutil classifies network failures seen by outbound HTTP calls.
package netutil

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// ShouldRetry reports whether err looks transient: timeouts, failed dials,
// refused or reset connections and truncated responses. Cancellation and
// protocol-level errors are not retried.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && (opErr.Timeout() || opErr.Op == "dial") {
		return true
	}

	// *url.Error is a net.Error that reports the timeout of the error it wraps.
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
