package retrier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBackoffDelay(t *testing.T) {
	cfg := Config{Attempts: 5, BaseDelay: time.Second}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
	}
	for _, tc := range cases {
		if got := BackoffDelay(cfg, tc.attempt); got != tc.want {
			t.Errorf("BackoffDelay(attempt=%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestBackoffDelayCap(t *testing.T) {
	cfg := Config{Attempts: 10, BaseDelay: time.Second, MaxDelay: 3 * time.Second}
	if got := BackoffDelay(cfg, 5); got != 3*time.Second {
		t.Errorf("capped delay = %v, want 3s", got)
	}
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), discardLogger(), "test_op",
		Config{Attempts: 3, BaseDelay: time.Millisecond},
		func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("transient")
			}
			return "ok", nil
		})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q", result)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("always fails")
	calls := 0
	_, err := Do(context.Background(), discardLogger(), "test_op",
		Config{Attempts: 3, BaseDelay: time.Millisecond},
		func(ctx context.Context) (int, error) {
			calls++
			return 0, sentinel
		})
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want wrapped sentinel", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoFirstTrySuccessSkipsDelay(t *testing.T) {
	start := time.Now()
	_, err := Do(context.Background(), discardLogger(), "test_op",
		Config{Attempts: 3, BaseDelay: time.Second},
		func(ctx context.Context) (int, error) { return 1, nil })
	if err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("first-try success should not sleep, elapsed=%v", elapsed)
	}
}

func TestDoContextCancelDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, discardLogger(), "test_op",
		Config{Attempts: 5, BaseDelay: time.Minute},
		func(ctx context.Context) (int, error) { return 0, errors.New("fail") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
