// Package retrier: 지수 백오프 기반의 범용 재시도 래퍼.
// 백엔드 API처럼 일시적으로 실패할 수 있는 호출을 감싸는 데 사용한다.
package retrier

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Config: 재시도 동작 설정
type Config struct {
	// Attempts: 총 시도 횟수 (첫 시도 포함). 1 미만이면 1로 취급한다.
	Attempts int
	// BaseDelay: 첫 재시도 전 대기 시간. 이후 시도마다 2배씩 증가한다.
	BaseDelay time.Duration
	// MaxDelay: 대기 시간 상한. 0이면 상한 없음.
	MaxDelay time.Duration
}

// DefaultConfig: 기본 재시도 설정 (3회 시도, 1초 기본 대기)
func DefaultConfig() Config {
	return Config{Attempts: 3, BaseDelay: time.Second}
}

// BackoffDelay: attempt번째 실패 후 대기 시간을 계산한다. (attempt는 0부터)
// delay = BaseDelay * 2^attempt, MaxDelay가 설정되어 있으면 상한 적용.
func BackoffDelay(cfg Config, attempt int) time.Duration {
	delay := cfg.BaseDelay * time.Duration(1<<attempt)
	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return delay
}

// Do: fn을 설정된 횟수만큼 재시도한다. 모든 에러가 재시도 대상이다.
// 마지막 시도의 에러가 그대로 반환되며, 대기 중 컨텍스트가 취소되면 즉시 중단한다.
func Do[T any](ctx context.Context, logger *slog.Logger, operation string, cfg Config, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		delay := BackoffDelay(cfg, attempt)
		logger.Warn("retry_scheduled",
			"operation", operation,
			"attempt", attempt+1,
			"max_attempts", attempts,
			"delay", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("retry aborted operation=%s: %w", operation, ctx.Err())
		case <-timer.C:
		}
	}

	logger.Error("retry_exhausted", "operation", operation, "attempts", attempts, "error", lastErr)
	return zero, fmt.Errorf("retry exhausted operation=%s: %w", operation, lastErr)
}
