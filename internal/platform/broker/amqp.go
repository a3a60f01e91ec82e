package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"bookstoreMq/internal/modules/catalog/domain"
)

const amqpDialTimeout = 10 * time.Second

// AMQPClient talks to RabbitMQ (or CloudAMQP) over one connection and one channel.
type AMQPClient struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPClient(url, queue string) *AMQPClient {
	return &AMQPClient{url: url, queue: queue}
}

func (c *AMQPClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.channelLocked(ctx)
	return err
}

// channelLocked returns the live channel, establishing connection, channel and
// queue declaration when needed. c.mu must be held.
func (c *AMQPClient) channelLocked(ctx context.Context) (*amqp.Channel, error) {
	if c.conn != nil && !c.conn.IsClosed() && c.ch != nil && !c.ch.IsClosed() {
		return c.ch, nil
	}
	c.releaseLocked()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	slog.Info("amqp connecting", slog.String("queue", c.queue))
	conn, err := amqp.DialConfig(c.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(amqpDialTimeout),
	})
	if err != nil {
		slog.Error("amqp connect failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: dial: %w", ErrConnection, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %w", ErrConnection, err)
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare queue %q: %w", ErrConnection, c.queue, err)
	}
	// one unacknowledged delivery at a time
	if err := ch.Qos(1, 0, false); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: set prefetch: %w", ErrConnection, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: enable publisher confirms: %w", ErrConnection, err)
	}

	c.conn, c.ch = conn, ch
	slog.Info("amqp connected", slog.String("queue", c.queue))
	return ch, nil
}

func (c *AMQPClient) Publish(ctx context.Context, env domain.Envelope) error {
	body, err := EncodeEnvelope(env)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}

	c.mu.Lock()
	ch, err := c.channelLocked(ctx)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	confirm, err := ch.PublishWithDeferredConfirmWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		slog.Error("amqp publish failed", slog.String("queue", c.queue), slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}
	// Publish returns once the broker confirmed the message.
	if confirm != nil {
		acked, err := confirm.WaitContext(ctx)
		if err != nil {
			return fmt.Errorf("%w: wait for confirm: %w", ErrPublish, err)
		}
		if !acked {
			slog.Error("amqp publish nacked", slog.String("queue", c.queue), slog.Uint64("deliveryTag", confirm.DeliveryTag))
			return fmt.Errorf("%w: broker rejected message", ErrPublish)
		}
	}
	slog.Info("amqp message published",
		slog.String("queue", c.queue),
		slog.String("type", string(env.Type)),
		slog.String("operation", string(env.Operation)),
		slog.String("entityId", env.EntityID()),
	)
	return nil
}

func (c *AMQPClient) Consume(ctx context.Context, handler Handler) error {
	c.mu.Lock()
	ch, err := c.channelLocked(ctx)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	deliveries, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%w: register consumer: %w", ErrConnection, err)
	}
	slog.Info("amqp waiting for messages", slog.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%w: delivery stream closed", ErrConnection)
			}
			process(ctx, c.queue, d.Body, handler,
				slog.Uint64("deliveryTag", d.DeliveryTag),
				slog.Bool("redelivered", d.Redelivered),
			)
			if err := d.Ack(false); err != nil {
				slog.Warn("amqp ack failed", slog.Uint64("deliveryTag", d.DeliveryTag), slog.Any("error", err))
			}
		}
	}
}

func (c *AMQPClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil && c.ch == nil {
		return
	}
	c.releaseLocked()
	slog.Info("amqp connection closed", slog.String("queue", c.queue))
}

func (c *AMQPClient) releaseLocked() {
	if c.ch != nil {
		if err := c.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			slog.Warn("amqp channel close failed", slog.Any("error", err))
		}
		c.ch = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			slog.Warn("amqp connection close failed", slog.Any("error", err))
		}
		c.conn = nil
	}
}

var _ Client = (*AMQPClient)(nil)
