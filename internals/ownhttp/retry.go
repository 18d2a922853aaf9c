package ownhttp

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. Only errors wrapped with this
// type are retried by Retry.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry calls fn up to `attempts` times, doubling `delay` after every failed attempt.
// The returned error is never a *RetryableError, it is unwrapped before returning.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var retryable *RetryableError
		if !errors.As(err, &retryable) {
			return err
		}
		lastErr = retryable.Err

		if i < attempts-1 {
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

// IsTransientStatus returns true for status codes that are worth retrying
func IsTransientStatus(code int) bool {
	return code == 429 || code >= 500
}
