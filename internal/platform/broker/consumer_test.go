package broker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstoreMq/internal/modules/catalog/domain"
)

type flakyClient struct {
	failures int
	calls    int
	consumed chan struct{}
}

func (c *flakyClient) Connect(context.Context) error {
	c.calls++
	if c.calls <= c.failures {
		return fmt.Errorf("%w: attempt %d", ErrConnection, c.calls)
	}
	return nil
}

func (c *flakyClient) Publish(context.Context, domain.Envelope) error { return nil }

func (c *flakyClient) Consume(ctx context.Context, _ Handler) error {
	close(c.consumed)
	<-ctx.Done()
	return nil
}

func (c *flakyClient) Close() {}

func TestRetryPolicyDelay(t *testing.T) {
	p := RetryPolicy{Backoff: 10 * time.Millisecond, MaxBackoff: 35 * time.Millisecond}
	assert.Equal(t, 10*time.Millisecond, p.delay(1))
	assert.Equal(t, 20*time.Millisecond, p.delay(2))
	assert.Equal(t, 35*time.Millisecond, p.delay(3))
	assert.Equal(t, 35*time.Millisecond, p.delay(10))

	assert.Equal(t, time.Second, RetryPolicy{}.delay(1))
}

func TestStartConsumerRetriesConnect(t *testing.T) {
	client := &flakyClient{failures: 2, consumed: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done, err := StartConsumer(ctx, client, nil, RetryPolicy{Attempts: 3, Backoff: time.Millisecond})
	require.NoError(t, err)

	<-client.consumed
	assert.Equal(t, 3, client.calls)
	cancel()
	<-done
}

func TestStartConsumerGivesUp(t *testing.T) {
	client := &flakyClient{failures: 10, consumed: make(chan struct{})}

	_, err := StartConsumer(context.Background(), client, nil, RetryPolicy{Attempts: 2, Backoff: time.Millisecond})

	assert.ErrorIs(t, err, ErrConnection)
	assert.Equal(t, 3, client.calls)
}

func TestStartConsumerNoRetryByDefault(t *testing.T) {
	client := &flakyClient{failures: 1, consumed: make(chan struct{})}

	_, err := StartConsumer(context.Background(), client, nil, RetryPolicy{})

	assert.ErrorIs(t, err, ErrConnection)
	assert.Equal(t, 1, client.calls)
}

func TestConnectWithRetryStopsOnCancel(t *testing.T) {
	client := &flakyClient{failures: 10}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ConnectWithRetry(ctx, client, RetryPolicy{Attempts: 5, Backoff: time.Hour})

	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, client.calls)
}
