package bootstrap

import (
	"booking-orchestrator/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	DBModule,
	RedisModule,
	JWTModule,
	components.PersistenceModule,
	components.ProviderModule,
	components.UseCaseModule,
	OutboxModule,
	components.HandlerModule,
)
