package bootstrap

import (
	"log/slog"

	"booking-orchestrator/internal/handler/middleware"
	"booking-orchestrator/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(l *middleware.Logger) *slog.Logger { return l.GetSlogLogger() },
	),
)

// NewLogger also installs the logger as the slog default so package-level slog calls share its format
func NewLogger(cfg config.Config) *middleware.Logger {
	l := middleware.NewLogger(cfg.Log)
	slog.SetDefault(l.GetSlogLogger())
	return l
}
