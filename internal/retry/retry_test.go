package retry

import (
	"context"
	"errors"
	"testing"
)

func TestDo_Success(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), SingleRetry(), nil, func(ctx context.Context, attempt int) error {
		attempts++
		return nil
	})

	if err != nil {
		t.Errorf("Do() returned error = %v, want nil", err)
	}
	if attempts != 1 {
		t.Errorf("Do() made %d attempts, want 1", attempts)
	}
}

func TestDo_PermanentError(t *testing.T) {
	attempts := 0
	permanentErr := errors.New("permanent")

	classifier := func(err error) bool {
		return !errors.Is(err, permanentErr)
	}

	err := Do(context.Background(), SingleRetry(), classifier, func(ctx context.Context, attempt int) error {
		attempts++
		return permanentErr
	})

	if !errors.Is(err, permanentErr) {
		t.Errorf("Do() returned error = %v, want %v", err, permanentErr)
	}
	if attempts != 1 {
		t.Errorf("Do() made %d attempts, want 1", attempts)
	}
}

func TestDo_SingleRetryPassesAttemptNumber(t *testing.T) {
	var seen []int
	err := Do(context.Background(), SingleRetry(), IsRetryable, func(ctx context.Context, attempt int) error {
		seen = append(seen, attempt)
		if attempt == 0 {
			return errors.New("first attempt failed")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Do() returned error = %v, want nil", err)
	}
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Errorf("Do() attempts = %v, want [0 1]", seen)
	}
}

func TestDo_SingleRetryExhausted(t *testing.T) {
	attempts := 0
	tempErr := errors.New("temporary")

	err := Do(context.Background(), SingleRetry(), IsRetryable, func(ctx context.Context, attempt int) error {
		attempts++
		return tempErr
	})

	if attempts != 2 {
		t.Errorf("Do() made %d attempts, want 2", attempts)
	}
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Do() error = %T, want *ExhaustedError", err)
	}
	if exhausted.Attempts != 2 {
		t.Errorf("ExhaustedError.Attempts = %d, want 2", exhausted.Attempts)
	}
	if !errors.Is(err, tempErr) {
		t.Errorf("Do() error does not wrap last attempt error: %v", err)
	}
}

func TestDo_MaxRetriesRunsEveryAttempt(t *testing.T) {
	var seen []int
	err := Do(context.Background(), Config{MaxRetries: 2}, IsRetryable, func(ctx context.Context, attempt int) error {
		seen = append(seen, attempt)
		return errors.New("temporary")
	})

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Do() error = %T, want *ExhaustedError", err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("ExhaustedError.Attempts = %d, want 3", exhausted.Attempts)
	}
	if len(seen) != 3 || seen[0] != 0 || seen[1] != 1 || seen[2] != 2 {
		t.Errorf("Do() attempts = %v, want [0 1 2]", seen)
	}
}

func TestDo_NegativeMaxRetriesRunsOnce(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), Config{MaxRetries: -3}, IsRetryable, func(ctx context.Context, attempt int) error {
		attempts++
		return errors.New("temporary")
	})

	if err == nil {
		t.Error("Do() returned nil error, want error")
	}
	if attempts != 1 {
		t.Errorf("Do() made %d attempts, want 1", attempts)
	}
}

func TestDo_ContextCanceledBetweenAttempts(t *testing.T) {
	attempts := 0
	ctx, cancel := context.WithCancel(context.Background())

	err := Do(ctx, Config{MaxRetries: 5}, IsRetryable, func(ctx context.Context, attempt int) error {
		attempts++
		cancel()
		return errors.New("temporary")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() returned error = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("Do() made %d attempts, want 1", attempts)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"context canceled", context.Canceled, false},
		{"context deadline exceeded", context.DeadlineExceeded, false},
		{"wrapped cancel", errors.Join(errors.New("run"), context.Canceled), false},
		{"generic error", errors.New("generic"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
