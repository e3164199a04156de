// Package retry runs an operation with exponential backoff between
// retryable failures.
package retry

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// BackoffMultiplier is the growth factor between consecutive delays.
const BackoffMultiplier = 2

// Policy governs how many times an operation runs and how long to wait
// between attempts. It is a value type; share it freely.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// DefaultPolicy returns three attempts starting at a two second delay.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
	}
}

// Validate reports whether the policy can be executed.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry: max attempts must be positive, got %d", p.MaxAttempts)
	}
	if p.InitialDelay < 0 {
		return errors.New("retry: initial delay must not be negative")
	}
	return nil
}

// Delay returns the wait before retry i, counting from zero:
// InitialDelay * 2^i.
func (p Policy) Delay(i int) time.Duration {
	if i < 0 {
		i = 0
	}
	return time.Duration(float64(p.InitialDelay) * math.Pow(BackoffMultiplier, float64(i)))
}

type settings struct {
	logger    zerolog.Logger
	sleep     func(time.Duration)
	retryable func(error) bool
	operation string
}

// Option customises a single Do call.
type Option func(*settings)

// WithLogger sets the logger that receives one warning per retry.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithSleep replaces time.Sleep, mainly so tests can observe delays.
func WithSleep(fn func(time.Duration)) Option {
	return func(s *settings) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

// WithClassifier overrides IsRetryable.
func WithClassifier(fn func(error) bool) Option {
	return func(s *settings) {
		if fn != nil {
			s.retryable = fn
		}
	}
}

// WithOperation names the operation in log lines.
func WithOperation(name string) Option {
	return func(s *settings) { s.operation = name }
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// policy's attempt budget is spent. The last error is returned unchanged so
// callers can still classify it. Do has no cancellation hook: once started it
// runs to completion.
func Do[T any](policy Policy, op func() (T, error), opts ...Option) (T, error) {
	s := settings{
		logger:    zerolog.Nop(),
		sleep:     time.Sleep,
		retryable: IsRetryable,
		operation: "operation",
	}
	for _, opt := range opts {
		opt(&s)
	}

	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var (
		result T
		err    error
	)
	for attempt := 0; attempt < attempts; attempt++ {
		result, err = op()
		if err == nil {
			return result, nil
		}
		if attempt == attempts-1 || !s.retryable(err) {
			break
		}

		delay := policy.Delay(attempt)
		s.logger.Warn().
			Err(err).
			Str("operation", s.operation).
			Int("attempt", attempt+1).
			Int("max_attempts", attempts).
			Dur("delay", delay).
			Msg("retry: transient failure, backing off")
		s.sleep(delay)
	}

	var zero T
	return zero, err
}
