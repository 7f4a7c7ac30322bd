package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shortform/ai-video-worker/internal/logger"
)

func newTestExecutor(maxRetries int, base time.Duration) *Executor {
	return New(maxRetries, base, logger.New("error"))
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	e := newTestExecutor(3, time.Millisecond)

	calls := 0
	err := e.Do(context.Background(), "op", func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoRetryableExhaustsBudget(t *testing.T) {
	e := newTestExecutor(3, time.Millisecond)

	calls := 0
	wantErr := errors.New("server error: 503")
	err := e.Do(context.Background(), "op", func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Do() error = %v, want %v", err, wantErr)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want maxRetries+1 = 4", calls)
	}
}

func TestDoRecoversMidBudget(t *testing.T) {
	e := newTestExecutor(3, time.Millisecond)

	calls := 0
	err := e.Do(context.Background(), "op", func() error {
		calls++
		if calls < 3 {
			return errors.New("server error: 503")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoPermanentAbortsImmediately(t *testing.T) {
	e := newTestExecutor(3, time.Millisecond)

	calls := 0
	wantErr := errors.New("client error: 404")
	err := e.Do(context.Background(), "op", func() error {
		calls++
		return Permanent(wantErr)
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Do() error = %v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want exactly 1 for terminal failure", calls)
	}
}

func TestDoBackoffDelaysGrow(t *testing.T) {
	base := 10 * time.Millisecond
	e := newTestExecutor(3, base)

	start := time.Now()
	_ = e.Do(context.Background(), "op", func() error {
		return errors.New("transient")
	})
	elapsed := time.Since(start)

	// Delays are base*2^i: 10 + 20 + 40 = 70ms minimum across 4 attempts.
	if min := 70 * time.Millisecond; elapsed < min {
		t.Errorf("elapsed = %v, want at least %v", elapsed, min)
	}
}

func TestDoContextCancelStopsRetrying(t *testing.T) {
	e := newTestExecutor(10, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := e.Do(ctx, "op", func() error {
		calls++
		return errors.New("transient")
	})
	if err == nil {
		t.Fatal("Do() should fail after cancellation")
	}
	if calls > 2 {
		t.Errorf("calls = %d, cancellation should stop further attempts", calls)
	}
}
