package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const connectTimeout = 15 * time.Second

var DBModule = fx.Module("db",
	fx.Provide(NewDB),
	PoolAsDBTX,
)

var PoolAsDBTX = fx.Provide(func(pool *pgxpool.Pool) db.DBTX { return pool })

// NewDB opens the pool and applies pending migrations before anything else starts
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		cleanup()
		return nil, err
	}
	logger.Info("database ready", slog.String("host", cfg.DB.Host), slog.String("db", cfg.DB.DBName))

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
