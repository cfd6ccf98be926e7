package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for remote score fetching.
var (
	// ErrNotFound reports that the requested score does not exist at its
	// source.
	ErrNotFound = errors.New("not found")

	// ErrNetwork reports a transport failure: timeouts, connection
	// errors, or 5xx responses.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error as transient. [RetryWithBackoff] retries
// only errors carrying this marker; everything else fails fast.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries the transient marker.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to three times, doubling the wait between
// attempts starting at one second. Only errors marked [Retryable] are
// retried; cancelling the context aborts the wait.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const maxAttempts = 3

	delay := time.Second
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == maxAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
