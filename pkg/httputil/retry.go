package httputil

import (
	"context"
	"errors"
	"io"
	"strings"
	"syscall"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (connection resets, truncated responses) with this
// type so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. A zero delay retries without waiting; a non-zero
// delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			if delay == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
				continue
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// IsTransient reports whether err belongs to the connection-reset class of
// transport failures: the server tore down the connection mid-exchange, so
// an immediate retry on a fresh connection is likely to succeed. Anything
// else (DNS failures, refused connections, TLS errors) is not transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	// net/http keeps errServerClosedIdle unexported, so match on the text.
	return strings.Contains(err.Error(), "server closed idle connection")
}
