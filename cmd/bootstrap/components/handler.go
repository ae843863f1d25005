package components

import (
	"booking-orchestrator/internal/handler"
	"booking-orchestrator/internal/handler/api"
	"booking-orchestrator/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCatalogHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewReservationHandler,
		api.NewPurchaseHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	catalog *api.CatalogHandler,
	cart *api.CartHandler,
	checkout *api.CheckoutHandler,
	reservation *api.ReservationHandler,
	purchase *api.PurchaseHandler,
) handler.Handlers {
	return handler.Handlers{
		Catalog:     catalog,
		Cart:        cart,
		Checkout:    checkout,
		Reservation: reservation,
		Purchase:    purchase,
	}
}
