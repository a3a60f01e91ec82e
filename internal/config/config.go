// Package config reads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Broker   BrokerConfig
	Consumer ConsumerConfig
	Logging  LoggingConfig
	Store    StoreConfig
}

type ServerConfig struct {
	Port            string
	StaticDir       string
	ShutdownTimeout time.Duration
}

type BrokerConfig struct {
	// Driver is amqp, kafka or memory.
	Driver       string
	URL          string
	Queue        string
	KafkaBrokers []string
	KafkaGroupID string
}

// ConsumerConfig is the explicit connect policy of the queue consumer.
type ConsumerConfig struct {
	ConnectRetries    int
	ConnectBackoff    time.Duration
	ConnectMaxBackoff time.Duration
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

type StoreConfig struct {
	SeedSampleData bool
}

// Load collects configuration from the environment with defaults.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Server: ServerConfig{
			Port:      getenv("PORT", "3000"),
			StaticDir: getenv("STATIC_DIR", ""),
		},
		Broker: BrokerConfig{
			Driver:       strings.ToLower(getenv("BROKER_DRIVER", "amqp")),
			URL:          getenv("CLOUDAMQP_URL", "amqp://localhost"),
			Queue:        getenv("QUEUE_NAME", "bookstore"),
			KafkaBrokers: splitList(firstNonEmpty(os.Getenv("KAFKA_BROKERS"), os.Getenv("KAFKA_BROKER"))),
			KafkaGroupID: getenv("KAFKA_GROUP_ID", "bookstore-worker"),
		},
		Logging: LoggingConfig{
			Level:     getenv("LOG_LEVEL", "info"),
			Format:    getenv("LOG_FORMAT", "text"),
			Directory: getenv("LOG_DIR", ""),
		},
	}

	var err error
	if cfg.Server.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.Consumer.ConnectRetries, err = intEnv("CONSUMER_CONNECT_RETRIES", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.Consumer.ConnectBackoff, err = durationEnv("CONSUMER_CONNECT_BACKOFF", time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.Consumer.ConnectMaxBackoff, err = durationEnv("CONSUMER_CONNECT_MAX_BACKOFF", 30*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.Store.SeedSampleData, err = boolEnv("SEED_SAMPLE_DATA", true); err != nil {
		errs = append(errs, err)
	}

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func (c Config) validate() []error {
	var errs []error
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT %q is not a port number", c.Server.Port))
	}
	if strings.TrimSpace(c.Broker.Queue) == "" {
		errs = append(errs, errors.New("QUEUE_NAME must not be empty"))
	}
	switch c.Broker.Driver {
	case "amqp":
		if c.Broker.URL == "" {
			errs = append(errs, errors.New("CLOUDAMQP_URL must not be empty"))
		}
	case "kafka":
		if len(c.Broker.KafkaBrokers) == 0 {
			errs = append(errs, errors.New("KAFKA_BROKERS is required for the kafka driver"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("BROKER_DRIVER %q is not one of amqp, kafka, memory", c.Broker.Driver))
	}
	if c.Consumer.ConnectRetries < 0 {
		errs = append(errs, errors.New("CONSUMER_CONNECT_RETRIES must not be negative"))
	}
	return errs
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := getenv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := getenv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := getenv(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
