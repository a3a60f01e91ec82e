package broker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"bookstoreMq/internal/modules/catalog/domain"
)

// MemoryClient is an in-process FIFO queue with the same contract as the network
// drivers. Messages go through the envelope codec so consumers see exactly what a
// real broker would deliver. It is used by tests and by local runs without a broker.
type MemoryClient struct {
	queue string

	mu          sync.Mutex
	backlog     [][]byte
	connected   bool
	unavailable bool
	notify      chan struct{}
	// closed is closed when the current connection is dropped, ending Consume.
	closed chan struct{}

	published atomic.Uint64
	acked     atomic.Uint64
}

// MemoryStats is a snapshot of the queue counters.
type MemoryStats struct {
	Published    uint64
	Acknowledged uint64
	Pending      int
}

func NewMemoryClient(queue string) *MemoryClient {
	return &MemoryClient{queue: queue, notify: make(chan struct{}, 1)}
}

// SetAvailable simulates the broker going away (false) or coming back (true).
// While unavailable, Connect fails and the current connection is dropped.
func (c *MemoryClient) SetAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unavailable = !available
	if !available {
		c.dropLocked()
	}
}

func (c *MemoryClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *MemoryClient) connectLocked(ctx context.Context) error {
	if c.connected {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	if c.unavailable {
		return fmt.Errorf("%w: memory queue %q unavailable", ErrConnection, c.queue)
	}
	c.connected = true
	c.closed = make(chan struct{})
	return nil
}

func (c *MemoryClient) dropLocked() {
	if !c.connected {
		return
	}
	c.connected = false
	close(c.closed)
}

func (c *MemoryClient) Publish(ctx context.Context, env domain.Envelope) error {
	body, err := EncodeEnvelope(env)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}
	c.mu.Lock()
	if err := c.connectLocked(ctx); err != nil {
		c.mu.Unlock()
		return err
	}
	c.backlog = append(c.backlog, body)
	c.mu.Unlock()
	c.published.Add(1)

	select {
	case c.notify <- struct{}{}:
	default:
	}
	slog.Debug("memory message published", slog.String("queue", c.queue), slog.String("entityId", env.EntityID()))
	return nil
}

// Consume delivers until ctx ends, or until the client is closed or made
// unavailable, which returns ErrConnection like a dropped broker stream.
func (c *MemoryClient) Consume(ctx context.Context, handler Handler) error {
	c.mu.Lock()
	if err := c.connectLocked(ctx); err != nil {
		c.mu.Unlock()
		return err
	}
	closed := c.closed
	c.mu.Unlock()

	for {
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-closed:
			return fmt.Errorf("%w: memory queue %q closed", ErrConnection, c.queue)
		default:
		}
		body, ok := c.next()
		if !ok {
			select {
			case <-ctx.Done():
				return nil
			case <-closed:
				return fmt.Errorf("%w: memory queue %q closed", ErrConnection, c.queue)
			case <-c.notify:
				continue
			}
		}
		process(ctx, c.queue, body, handler, slog.Uint64("deliveryTag", c.acked.Load()+1))
		c.acked.Add(1)
	}
}

func (c *MemoryClient) next() ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.backlog) == 0 {
		return nil, false
	}
	body := c.backlog[0]
	c.backlog = c.backlog[1:]
	return body, true
}

// PublishRaw enqueues an arbitrary body, bypassing the envelope codec.
func (c *MemoryClient) PublishRaw(body []byte) {
	c.mu.Lock()
	c.backlog = append(c.backlog, body)
	c.mu.Unlock()
	c.published.Add(1)
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

func (c *MemoryClient) Stats() MemoryStats {
	c.mu.Lock()
	pending := len(c.backlog)
	c.mu.Unlock()
	return MemoryStats{
		Published:    c.published.Load(),
		Acknowledged: c.acked.Load(),
		Pending:      pending,
	}
}

func (c *MemoryClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropLocked()
}

var _ Client = (*MemoryClient)(nil)
