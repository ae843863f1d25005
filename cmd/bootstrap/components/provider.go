package components

import (
	"log/slog"
	"net/http"
	"time"

	"booking-orchestrator/internal/infra/bank"
	"booking-orchestrator/internal/infra/lock"
	"booking-orchestrator/internal/infra/provider"
	"booking-orchestrator/internal/usecase/shared"

	"go.uber.org/fx"
)

// per-call deadlines come from the request context; this only bounds idle sockets
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

var ProviderModule = fx.Module("provider",
	fx.Provide(
		NewHTTPClient,
		provider.NewRESTTransport,
		provider.NewLegacyTransport,
		provider.NewInvoker,
		fx.Annotate(
			provider.NewRegistry,
			fx.As(new(shared.ProviderGateways)),
		),
		fx.Annotate(
			bank.NewClient,
			fx.As(new(shared.Bank)),
		),
		fx.Annotate(
			lock.NewRedisLocker,
			fx.As(new(shared.Locker)),
		),
	),
	fx.Invoke(func(inv *provider.Invoker, logger *slog.Logger) {
		logger.Info("provider invoker ready", slog.String("preferred_protocol", string(inv.Preferred())))
	}),
)
