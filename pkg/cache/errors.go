package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by the cache backends and the platform clients
// built on top of them.
var (
	// ErrNotFound is returned when a requested platform resource (a
	// playlist, hashtag, or chart) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for HTTP failures against platform APIs
	// (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Retry tuning for transient platform failures.
const (
	retryAttempts  = 3
	retryBaseDelay = time.Second
)

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff retries fn with exponential backoff. It wraps
// platform fetches, where rate limits and flaky vendor endpoints make
// transient failures routine. Only errors wrapped with Retryable
// trigger another attempt.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay
	var lastErr error

	for i := 0; i < retryAttempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < retryAttempts-1 {
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
