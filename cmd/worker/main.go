// Command worker runs the queue consumer on its own, without the HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"bookstoreMq/internal/config"
	"bookstoreMq/internal/modules/catalog/application/handler"
	"bookstoreMq/internal/modules/catalog/infrastructure"
	"bookstoreMq/internal/platform/broker"
	"bookstoreMq/internal/shared/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	logger, logCloser, err := logging.Setup(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Directory: cfg.Logging.Directory,
		AddSource: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	if code := run(cfg, logger); code != 0 {
		logCloser.Close()
		os.Exit(code)
	}
	logCloser.Close()
}

func run(cfg config.Config, logger *slog.Logger) int {
	client, err := broker.New(broker.Options{
		Driver:       cfg.Broker.Driver,
		URL:          cfg.Broker.URL,
		Queue:        cfg.Broker.Queue,
		KafkaBrokers: cfg.Broker.KafkaBrokers,
		KafkaGroupID: cfg.Broker.KafkaGroupID,
	})
	if err != nil {
		slog.Error("broker setup failed", slog.Any("error", err))
		return 1
	}
	defer client.Close()

	metricsObserver, err := infrastructure.NewMetricsObserver(otel.Meter("bookstoreMq/worker"))
	if err != nil {
		slog.Error("metrics setup failed", slog.Any("error", err))
		return 1
	}
	catalog := infrastructure.NewCatalog(cfg.Store.SeedSampleData)
	dispatcher := handler.NewCatalogDispatcher(catalog.Authors, catalog.Publishers,
		infrastructure.Observers{infrastructure.NewLogObserver(logger), metricsObserver})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.Info("worker starting", slog.String("driver", cfg.Broker.Driver), slog.String("queue", cfg.Broker.Queue))
	done, err := broker.StartConsumer(ctx, client, dispatcher.Handle, broker.RetryPolicy{
		Attempts:   cfg.Consumer.ConnectRetries,
		Backoff:    cfg.Consumer.ConnectBackoff,
		MaxBackoff: cfg.Consumer.ConnectMaxBackoff,
	})
	if err != nil {
		slog.Error("worker could not connect", slog.Any("error", err))
		return 1
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		slog.Info("worker shutting down", slog.String("signal", sig.String()))
		cancel()
		<-done
		return 0
	case <-done:
		slog.Error("worker consumer stopped unexpectedly")
		return 1
	}
}
