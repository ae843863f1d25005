package bootstrap

import (
	"booking-orchestrator/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections exposes the config groups constructors take directly
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	func(cfg config.Config) config.ProviderConfig { return cfg.Provider },
	func(cfg config.Config) config.BankConfig { return cfg.Bank },
	func(cfg config.Config) config.RedisConfig { return cfg.Redis },
)
