package broker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"bookstoreMq/internal/modules/catalog/domain"
)

const kafkaBatchTimeout = 10 * time.Millisecond

// KafkaClient maps the command queue onto a single-partition Kafka topic so
// consumption stays FIFO. Offsets are committed only after the handler returned.
type KafkaClient struct {
	brokers []string
	topic   string
	groupID string
	dialer  *kafka.Dialer

	mu        sync.Mutex
	connected bool
	writer    *kafka.Writer
	reader    *kafka.Reader
}

func NewKafkaClient(brokers []string, topic, groupID string) *KafkaClient {
	if groupID == "" {
		groupID = topic + "-worker"
	}
	return &KafkaClient{
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		dialer:  &kafka.Dialer{Timeout: 10 * time.Second, DualStack: true},
	}
}

func (c *KafkaClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *KafkaClient) connectLocked(ctx context.Context) error {
	if c.connected {
		return nil
	}
	slog.Info("kafka connecting", slog.Any("brokers", c.brokers), slog.String("topic", c.topic))
	if err := c.ensureTopic(ctx); err != nil {
		slog.Error("kafka connect failed", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	c.writer = c.newWriter()
	c.connected = true
	slog.Info("kafka connected", slog.String("topic", c.topic))
	return nil
}

// newWriter flushes every message on its own. kafka-go otherwise holds a partial
// batch for a full second, and Publish waits for the flush.
func (c *KafkaClient) newWriter() *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(c.brokers...),
		Topic:        c.topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchSize:    1,
		BatchTimeout: kafkaBatchTimeout,
	}
}

// ensureTopic creates the topic on the cluster controller. An existing topic is fine.
func (c *KafkaClient) ensureTopic(ctx context.Context) error {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.brokers[0])
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.brokers[0], err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("find controller: %w", err)
	}
	ctrl, err := c.dialer.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer ctrl.Close()

	err = ctrl.CreateTopics(kafka.TopicConfig{Topic: c.topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", c.topic, err)
	}
	return nil
}

func (c *KafkaClient) Publish(ctx context.Context, env domain.Envelope) error {
	body, err := EncodeEnvelope(env)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}

	c.mu.Lock()
	err = c.connectLocked(ctx)
	writer := c.writer
	c.mu.Unlock()
	if err != nil {
		return err
	}

	msg := kafka.Message{Key: []byte(env.EntityID()), Value: body, Time: time.Now().UTC()}
	if err := writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("kafka publish failed", slog.String("topic", c.topic), slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}
	slog.Info("kafka message published",
		slog.String("topic", c.topic),
		slog.String("type", string(env.Type)),
		slog.String("operation", string(env.Operation)),
		slog.String("entityId", env.EntityID()),
	)
	return nil
}

func (c *KafkaClient) Consume(ctx context.Context, handler Handler) error {
	c.mu.Lock()
	if err := c.connectLocked(ctx); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.reader == nil {
		c.reader = kafka.NewReader(kafka.ReaderConfig{
			Brokers: c.brokers,
			GroupID: c.groupID,
			Topic:   c.topic,
		})
	}
	reader := c.reader
	c.mu.Unlock()

	slog.Info("kafka waiting for messages", slog.String("topic", c.topic), slog.String("group", c.groupID))
	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: reader closed", ErrConnection)
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			continue
		}
		process(ctx, c.topic, m.Value, handler,
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
		)
		// commit even once shutdown has started; the handler already ran
		if err := reader.CommitMessages(context.WithoutCancel(ctx), m); err != nil {
			slog.Warn("kafka commit failed", slog.Int64("offset", m.Offset), slog.Any("error", err))
		}
	}
}

func (c *KafkaClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected && c.reader == nil {
		return
	}
	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			slog.Warn("kafka reader close failed", slog.Any("error", err))
		}
		c.reader = nil
	}
	if c.writer != nil {
		if err := c.writer.Close(); err != nil {
			slog.Warn("kafka writer close failed", slog.Any("error", err))
		}
		c.writer = nil
	}
	c.connected = false
	slog.Info("kafka connection closed", slog.String("topic", c.topic))
}

var _ Client = (*KafkaClient)(nil)
