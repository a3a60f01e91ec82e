package broker

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// RetryPolicy controls how often StartConsumer retries the initial connection.
// Attempts counts retries after the first try; zero means fail on the first error.
type RetryPolicy struct {
	Attempts   int
	Backoff    time.Duration
	MaxBackoff time.Duration
}

func (p RetryPolicy) delay(retry int) time.Duration {
	d := p.Backoff
	if d <= 0 {
		d = time.Second
	}
	for i := 1; i < retry; i++ {
		d *= 2
		if p.MaxBackoff > 0 && d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	return d
}

// ConnectWithRetry connects client following policy and returns the last error
// when every attempt failed.
func ConnectWithRetry(ctx context.Context, client Client, policy RetryPolicy) error {
	var err error
	for attempt := 0; attempt <= policy.Attempts; attempt++ {
		if attempt > 0 {
			wait := policy.delay(attempt)
			slog.Warn("broker connect retry", slog.Int("attempt", attempt), slog.Duration("backoff", wait), slog.Any("error", err))
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return errors.Join(err, ctx.Err())
			case <-timer.C:
			}
		}
		if err = client.Connect(ctx); err == nil {
			return nil
		}
	}
	return err
}

// StartConsumer connects client and runs its receive loop on a new goroutine.
// The returned channel is closed when the loop has stopped.
func StartConsumer(ctx context.Context, client Client, handler Handler, policy RetryPolicy) (<-chan struct{}, error) {
	if err := ConnectWithRetry(ctx, client, policy); err != nil {
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := client.Consume(ctx, handler); err != nil {
			slog.Error("consumer stopped", slog.Any("error", err))
			return
		}
		slog.Info("consumer stopped")
	}()
	return done, nil
}
