package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/shortform/ai-video-worker/internal/logger"
)

// Executor runs operations with exponential backoff. Every outbound network
// call in the pipeline goes through it: up to maxRetries+1 attempts, waiting
// baseDelay * 2^i between attempts. A failure wrapped with Permanent aborts
// immediately.
type Executor struct {
	maxRetries int
	baseDelay  time.Duration
	log        logger.Logger
}

// New creates an Executor. maxRetries is the number of re-attempts after the
// first failure, so maxRetries+1 attempts total.
func New(maxRetries int, baseDelay time.Duration, log logger.Logger) *Executor {
	return &Executor{
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		log:        log,
	}
}

// Permanent marks err as terminal: the executor surfaces it without
// consuming any retry budget. Client-side (4xx) rejections use this.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do executes fn until it succeeds, the attempt budget is exhausted, or a
// Permanent failure is returned. op names the operation in diagnostics. The
// context cancels the backoff sleep between attempts.
func (e *Executor) Do(ctx context.Context, op string, fn func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.baseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = time.Hour
	bo.MaxElapsedTime = 0 // bounded by attempts, not wall clock

	attempts := e.maxRetries + 1
	attempt := 0

	operation := func() error {
		attempt++
		err := fn()
		if err == nil {
			e.log.Debug(ctx, "%s: attempt %d/%d succeeded", op, attempt, attempts)
			return nil
		}

		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			e.log.Warn(ctx, "%s: attempt %d/%d terminal failure: %v", op, attempt, attempts, perm.Err)
		} else {
			e.log.Warn(ctx, "%s: attempt %d/%d failed: %v", op, attempt, attempts, err)
		}
		return err
	}

	wrapped := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(e.maxRetries)), ctx)
	if err := backoff.Retry(operation, wrapped); err != nil {
		e.log.Error(ctx, "%s: giving up after %d attempt(s): %v", op, attempt, err)
		return err
	}
	return nil
}
