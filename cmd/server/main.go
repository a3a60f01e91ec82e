package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"bookstoreMq/internal/config"
	"bookstoreMq/internal/modules/catalog/application/handler"
	"bookstoreMq/internal/modules/catalog/application/usecase"
	"bookstoreMq/internal/modules/catalog/infrastructure"
	transport "bookstoreMq/internal/modules/catalog/interface"
	"bookstoreMq/internal/platform/broker"
	"bookstoreMq/internal/shared/logging"
)

func main() {
	// A missing .env is fine; the environment alone is enough.
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
	defer logCloser.Close()
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("broker config resolved", slog.String("driver", cfg.Broker.Driver), slog.String("queue", cfg.Broker.Queue), slog.Any("kafkaBrokers", cfg.Broker.KafkaBrokers))

	client, err := broker.New(broker.Options{
		Driver:       cfg.Broker.Driver,
		URL:          cfg.Broker.URL,
		Queue:        cfg.Broker.Queue,
		KafkaBrokers: cfg.Broker.KafkaBrokers,
		KafkaGroupID: cfg.Broker.KafkaGroupID,
	})
	if err != nil {
		slog.Error("broker setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	catalog := infrastructure.NewCatalog(cfg.Store.SeedSampleData)

	metricsObserver, err := infrastructure.NewMetricsObserver(otel.Meter("bookstoreMq/catalog"))
	if err != nil {
		slog.Error("metrics setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	dispatcher := handler.NewCatalogDispatcher(catalog.Authors, catalog.Publishers,
		infrastructure.Observers{infrastructure.NewLogObserver(logger), metricsObserver})

	queries := usecase.NewCatalogQueries(catalog.Authors, catalog.Publishers)
	commands := usecase.NewSubmitCommandUseCase(client, queries)
	e := transport.NewServer(transport.NewCatalogHandler(queries, commands), transport.ServerOptions{StaticDir: cfg.Server.StaticDir})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The integrated worker is best effort: without it the API still serves reads
	// and keeps trying to publish.
	consumerDone, err := broker.StartConsumer(ctx, client, dispatcher.Handle, broker.RetryPolicy{
		Attempts:   cfg.Consumer.ConnectRetries,
		Backoff:    cfg.Consumer.ConnectBackoff,
		MaxBackoff: cfg.Consumer.ConnectMaxBackoff,
	})
	if err != nil {
		slog.Error("integrated worker not started", slog.Any("error", err))
	} else {
		slog.Info("integrated worker running", slog.String("queue", cfg.Broker.Queue))
	}

	go func() {
		slog.Info("http listening", slog.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	slog.Info("shutting down", slog.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", slog.Any("error", err))
	}

	cancel()
	if consumerDone != nil {
		select {
		case <-consumerDone:
		case <-shutdownCtx.Done():
			slog.Warn("consumer did not stop before shutdown timeout")
		}
	}
	client.Close()
	slog.Info("server stopped")
}
