package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestRetryPolicySucceedsAfterFailures(t *testing.T) {
	var slept []time.Duration

	policy := NewRetryPolicy(3, time.Second)
	policy.sleep = func(d time.Duration) { slept = append(slept, d) }

	attempts := 0
	err := policy.Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}

	wantSleeps := []time.Duration{time.Second, 2 * time.Second}
	if !reflect.DeepEqual(slept, wantSleeps) {
		t.Errorf("sleep durations = %v, want %v", slept, wantSleeps)
	}
}

func TestRetryPolicyExhaustsAttempts(t *testing.T) {
	policy := NewRetryPolicy(3, time.Second)
	policy.sleep = func(time.Duration) {}

	attempts := 0
	wrapped := errors.New("still broken")
	err := policy.Do(context.Background(), func() error {
		attempts++
		return wrapped
	})

	if err == nil {
		t.Fatal("Do() expected error after exhausting attempts")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if !errors.Is(err, wrapped) {
		t.Errorf("final error does not wrap the last failure: %v", err)
	}
}

func TestRetryPolicySkipsConfigurationErrors(t *testing.T) {
	policy := NewRetryPolicy(3, time.Second)
	policy.sleep = func(time.Duration) { t.Fatal("should not sleep for a configuration error") }

	attempts := 0
	err := policy.Do(context.Background(), func() error {
		attempts++
		return &ConfigurationError{Reason: "API key is not set"}
	})

	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("Do() error = %v, want ConfigurationError", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on configuration errors)", attempts)
	}
}

func TestRetryPolicyHonorsContextCancellation(t *testing.T) {
	policy := NewRetryPolicy(5, time.Second)
	policy.sleep = func(time.Duration) {}

	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := policy.Do(ctx, func() error {
		attempts++
		cancel()
		return errors.New("transient")
	})

	if err == nil {
		t.Fatal("Do() expected error after cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want wrapped context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestNewRetryPolicyDefaults(t *testing.T) {
	policy := NewRetryPolicy(0, 0)

	if policy.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", policy.MaxAttempts)
	}
	if policy.BaseDelay != time.Second {
		t.Errorf("BaseDelay = %v, want 1s", policy.BaseDelay)
	}
}
