// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	DefaultMaxAttempts = 4
	DefaultBaseDelay   = 1 * time.Second
	DefaultMaxDelay    = 20 * time.Second
)

// Policy describes how an operation is retried.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the wait after the first failed attempt. It doubles
	// after every further failure.
	BaseDelay time.Duration

	// MaxDelay caps a single wait. Zero means no cap.
	MaxDelay time.Duration

	// Retryable decides whether a failure is worth another attempt.
	// Nil uses DefaultRetryable.
	Retryable func(error) bool

	// Sleep waits between attempts. Nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns 4 attempts with waits of 1s, 2s and 4s, capped at 20s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

// DefaultRetryable retries everything except cancellation and errors
// marked with Permanent.
func DefaultRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !IsPermanent(err)
}

// Delay returns the wait after the given failed attempt (1-based):
// BaseDelay * 2^(attempt-1), capped at MaxDelay.
func (p Policy) Delay(attempt int) time.Duration {
	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// Do runs operation until it succeeds, fails with a non-retryable error,
// or MaxAttempts is exhausted. The error of the last attempt is returned
// unchanged.
func (p Policy) Do(ctx context.Context, operation func(ctx context.Context) error) error {
	if p.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = DefaultRetryable
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation(ctx)
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		if !retryable(lastErr) {
			return lastErr
		}

		// Don't sleep after the last attempt
		if attempt == p.MaxAttempts {
			break
		}

		delay := p.Delay(attempt)
		slog.Debug("operation failed, will retry",
			"attempt", attempt,
			"maxAttempts", p.MaxAttempts,
			"delay", delay,
			"error", lastErr)

		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	return lastErr
}

// Value is Do for operations that produce a result.
func Value[T any](ctx context.Context, p Policy, operation func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := p.Do(ctx, func(ctx context.Context) error {
		var err error
		result, err = operation(ctx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
