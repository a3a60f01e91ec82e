package infrastructure

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"bookstoreMq/internal/modules/catalog/application/port"
	"bookstoreMq/internal/modules/catalog/domain"
)

// LogObserver writes every command outcome to slog.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Observe(ctx context.Context, outcome domain.Outcome) {
	attrs := []any{
		slog.String("type", string(outcome.Kind)),
		slog.String("operation", string(outcome.Operation)),
		slog.String("entityId", outcome.EntityID),
		slog.String("status", string(outcome.Status)),
	}
	if outcome.Err != nil {
		attrs = append(attrs, slog.Any("error", outcome.Err))
	}

	switch {
	case outcome.Status == domain.StatusReplaced:
		o.logger.WarnContext(ctx, "create replaced existing entity", attrs...)
	case outcome.Status.Applied():
		o.logger.InfoContext(ctx, "command applied", attrs...)
	case outcome.Status == domain.StatusNotFound:
		o.logger.WarnContext(ctx, "command target not found", attrs...)
	default:
		o.logger.ErrorContext(ctx, "command dropped", attrs...)
	}
}

// MetricsObserver counts command outcomes on an OpenTelemetry counter.
type MetricsObserver struct {
	commands metric.Int64Counter
}

const commandsMetric = "catalog_commands_total"

func NewMetricsObserver(meter metric.Meter) (*MetricsObserver, error) {
	counter, err := meter.Int64Counter(commandsMetric,
		metric.WithDescription("Catalog write commands consumed from the queue, by outcome."),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, err
	}
	return &MetricsObserver{commands: counter}, nil
}

func (o *MetricsObserver) Observe(ctx context.Context, outcome domain.Outcome) {
	o.commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", string(outcome.Kind)),
		attribute.String("operation", string(outcome.Operation)),
		attribute.String("status", string(outcome.Status)),
	))
}

// Observers fans one outcome out to several observers in order.
type Observers []port.OutcomeObserver

func (list Observers) Observe(ctx context.Context, outcome domain.Outcome) {
	for _, o := range list {
		if o != nil {
			o.Observe(ctx, outcome)
		}
	}
}

var (
	_ port.OutcomeObserver = (*LogObserver)(nil)
	_ port.OutcomeObserver = (*MetricsObserver)(nil)
	_ port.OutcomeObserver = Observers(nil)
)
