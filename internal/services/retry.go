package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

const (
	defaultRetryMaxAttempts = 3
	defaultRetryBaseDelay   = time.Second
)

// RetryPolicy retries a failing operation with exponential backoff: the
// delay starts at BaseDelay and doubles after each failed attempt.
// Configuration errors abort immediately without further attempts.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// sleep is swappable so tests can run against a fake clock.
	sleep func(time.Duration)
}

func NewRetryPolicy(maxAttempts int, baseDelay time.Duration) *RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = defaultRetryBaseDelay
	}

	return &RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		sleep:       time.Sleep,
	}
}

// Do runs op until it succeeds, the attempts are exhausted, or ctx is done.
func (p *RetryPolicy) Do(ctx context.Context, op func() error) error {
	var lastErr error
	delay := p.BaseDelay

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		var confErr *ConfigurationError
		if errors.As(err, &confErr) {
			return err
		}

		lastErr = err

		if attempt == p.MaxAttempts {
			break
		}

		log.Printf("⚠️ Attempt %d failed: %v. Retrying in %s...\n", attempt, err, delay)

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		p.sleep(delay)
		delay *= 2
	}

	return fmt.Errorf("failed after %d attempts: %w", p.MaxAttempts, lastErr)
}
