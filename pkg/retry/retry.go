// Package retry provides retry-with-backoff support for network calls.
// It wraps an operation in exponential backoff with jitter, consulting the
// application's error classification to decide whether another attempt is
// worthwhile. The review core never retries; only the surrounding I/O does.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/prsentry/prsentry/pkg/errors"
	"github.com/prsentry/prsentry/pkg/logger"
)

// Config holds configuration for retry logic
type Config struct {
	// MaxRetries is the number of attempts after the first failure
	MaxRetries int
	// InitialBackoff is the delay before the first retry
	InitialBackoff time.Duration
	// MaxBackoff caps the delay between attempts
	MaxBackoff time.Duration
	// Multiplier is the exponential growth factor
	Multiplier float64
}

// DefaultConfig returns sensible default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     60 * time.Second,
		Multiplier:     2.0,
	}
}

// WithMaxRetries returns a copy of the config with MaxRetries overridden.
// Values below 1 keep the existing setting.
func (c Config) WithMaxRetries(n int) Config {
	if n >= 1 {
		c.MaxRetries = n
	}
	return c
}

// Backoff calculates the wait time for the given attempt with jitter.
// Formula: min(initial * multiplier^attempt, maxBackoff) plus up to 25% jitter.
func Backoff(attempt int, cfg Config) time.Duration {
	backoff := float64(cfg.InitialBackoff) * math.Pow(cfg.Multiplier, float64(attempt))
	if backoff > float64(cfg.MaxBackoff) {
		backoff = float64(cfg.MaxBackoff)
	}

	// Add jitter so simultaneous CI runs do not hammer an API in lockstep
	jitter := rand.Float64() * 0.25 * backoff
	result := backoff + jitter
	if result > float64(cfg.MaxBackoff) {
		result = float64(cfg.MaxBackoff)
	}

	return time.Duration(result)
}

// shouldRetry determines if an error is retryable
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Retryable()
	}
	// Unknown errors get the benefit of the doubt: the operations wrapped in
	// retry are all network calls
	return true
}

// Operation is a function that can be retried
type Operation func(ctx context.Context) error

// Do executes an operation with exponential backoff retry logic.
// The operation's name is used for log context only.
func Do(ctx context.Context, name string, op Operation, cfg Config) error {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}
		if attempt >= cfg.MaxRetries {
			logger.Error("All retry attempts failed",
				zap.String("operation", name),
				zap.Int("attempts", attempt+1),
				zap.Error(err),
			)
			return err
		}

		backoff := Backoff(attempt, cfg)
		logger.Warn("Operation failed, retrying",
			zap.String("operation", name),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
