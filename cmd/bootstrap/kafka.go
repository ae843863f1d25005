package bootstrap

import (
	"context"
	"log/slog"

	"booking-orchestrator/internal/infra/outbox"
	"booking-orchestrator/internal/infra/repository"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

var OutboxModule = fx.Module("outbox",
	fx.Provide(
		NewKafkaWriter,
		NewDispatcher,
		NewRelay,
	),
	fx.Invoke(startRelay),
)

func NewKafkaWriter(lc fx.Lifecycle, cfg config.Config) *kafka.Writer {
	w := outbox.NewWriter(cfg.Kafka.Brokers)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return w.Close()
		},
	})
	return w
}

func NewDispatcher(w *kafka.Writer, cfg config.Config, logger *slog.Logger) *outbox.Dispatcher {
	return outbox.NewDispatcher(logger, w, cfg.Kafka.Topic)
}

func NewRelay(pool *pgxpool.Pool, d *outbox.Dispatcher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *outbox.Relay {
	return outbox.NewRelay(logger, pool, repository.NewOutboxRepository(), d, clk, cfg.Kafka.RelayInterval)
}

// hooks are appended after the writer's, so fx stops the relay before closing the writer
func startRelay(lc fx.Lifecycle, relay *outbox.Relay, cfg config.Config, logger *slog.Logger) {
	if !cfg.Kafka.RelayEnabled {
		logger.Warn("outbox relay disabled; events stay pending")
		return
	}
	lc.Append(fx.Hook{
		OnStart: relay.Start,
		OnStop:  relay.Stop,
	})
}
