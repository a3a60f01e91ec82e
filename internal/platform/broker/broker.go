// Package broker owns the connection to the message broker that carries catalog
// write commands. Every driver declares one durable queue, publishes persistent
// messages and acknowledges a delivery only after its handler returned.
package broker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstoreMq/internal/modules/catalog/domain"
)

var (
	// ErrConnection reports an unreachable broker or a failed handshake.
	ErrConnection = errors.New("broker connection failed")
	// ErrPublish reports a message the broker did not accept.
	ErrPublish = errors.New("broker publish failed")
)

// Handler processes one delivered envelope. Whatever it returns, the delivery is acknowledged.
type Handler func(ctx context.Context, env domain.Envelope) error

// Client is the queue client shared by the HTTP layer and the consumer.
type Client interface {
	// Connect establishes the connection and declares the queue. It is a no-op
	// while a live connection exists.
	Connect(ctx context.Context) error
	// Publish sends env as a persistent message and returns once the broker accepted it.
	Publish(ctx context.Context, env domain.Envelope) error
	// Consume delivers messages to handler one at a time until ctx ends or the
	// delivery stream closes. It blocks and is meant to run on its own goroutine.
	Consume(ctx context.Context, handler Handler) error
	// Close releases the channel and connection. Secondary errors are logged.
	Close()
}

const (
	DriverAMQP   = "amqp"
	DriverKafka  = "kafka"
	DriverMemory = "memory"
)

// Options selects and configures a driver.
type Options struct {
	Driver       string
	URL          string
	Queue        string
	KafkaBrokers []string
	KafkaGroupID string
}

// New builds the client for opts.Driver. No connection is made until first use.
func New(opts Options) (Client, error) {
	if strings.TrimSpace(opts.Queue) == "" {
		return nil, errors.New("broker: queue name is required")
	}
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case DriverAMQP, "":
		return NewAMQPClient(opts.URL, opts.Queue), nil
	case DriverKafka:
		if len(opts.KafkaBrokers) == 0 {
			return nil, errors.New("broker: kafka driver needs at least one broker address")
		}
		return NewKafkaClient(opts.KafkaBrokers, opts.Queue, opts.KafkaGroupID), nil
	case DriverMemory:
		return NewMemoryClient(opts.Queue), nil
	default:
		return nil, fmt.Errorf("broker: unknown driver %q", opts.Driver)
	}
}
