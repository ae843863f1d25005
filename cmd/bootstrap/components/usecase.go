package components

import (
	"booking-orchestrator/internal/domain/reservation"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/usecase"
	"booking-orchestrator/internal/usecase/commands"
	"booking-orchestrator/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		func(cfg config.BookingConfig) (*reservation.RateSplitCalculator, error) {
			return reservation.NewRateSplitCalculator(cfg.CommissionRate)
		},
		fx.As(new(reservation.SplitCalculator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCartCommands,
		commands.NewPurchaseCommands,
		fx.Annotate(
			commands.NewHoldManager,
			fx.As(new(commands.HoldCommands)),
		),
		fx.Annotate(
			commands.NewCheckoutSaga,
			fx.As(new(commands.CheckoutCommands)),
		),
		fx.Annotate(
			commands.NewCancellationWorkflow,
			fx.As(new(commands.CancellationCommands)),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		queries.NewSearchQueries,
		queries.NewCartQueries,
		queries.NewReservationQueries,
		queries.NewPurchaseQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
