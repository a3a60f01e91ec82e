package broker

import (
	"context"
	"fmt"
	"log/slog"

	"bookstoreMq/internal/modules/catalog/domain"
)

// process decodes and handles one delivery. It never fails: undecodable bodies,
// handler errors and handler panics are logged so the caller can acknowledge.
func process(ctx context.Context, queue string, body []byte, handler Handler, attrs ...any) {
	logger := slog.With(append([]any{slog.String("queue", queue)}, attrs...)...)

	env, err := DecodeEnvelope(body)
	if err != nil {
		logger.Error("dropping undecodable message", slog.Any("error", err), slog.Int("bytes", len(body)))
		return
	}
	logger.Info("message received",
		slog.String("type", string(env.Type)),
		slog.String("operation", string(env.Operation)),
		slog.String("entityId", env.EntityID()),
	)

	if err := invoke(ctx, handler, env); err != nil {
		logger.Warn("handler error", slog.Any("error", err))
	}
}

func invoke(ctx context.Context, handler Handler, env domain.Envelope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, env)
}
