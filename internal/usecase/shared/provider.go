package shared

import (
	"context"
	"time"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/customer"
	"booking-orchestrator/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=provider.go -destination=../../../tests/mock/shared/provider_mock.go -package=sharedmock

var (
	// ErrProtocolNotSupported triggers the protocol fallback
	ErrProtocolNotSupported = catalog.ErrProtocolNotSupported
	// ErrProviderUnavailable covers timeouts, refused connections, 5xx and malformed bodies
	ErrProviderUnavailable = errs.New("provider unavailable")
	// ErrProviderRejected is a business refusal; it never triggers fallback
	ErrProviderRejected = errs.New("provider rejected request")
	ErrNoGateway        = errs.New("no gateway for capability")
)

type Product struct {
	ServiceID   uuid.UUID
	ServiceName string
	Capability  catalog.Capability
	ProductID   string
	Name        string
	Description string
	Location    string
	StartsAt    *time.Time
	UnitPrice   decimal.Decimal
	Currency    string
	Available   int
	Attributes  map[string]string
}

type SearchFilters struct {
	Location    string
	Destination string
	From        *time.Time
	To          *time.Time
	PartySize   int
	Category    string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

type AvailabilityQuery struct {
	ProductID string
	Start     time.Time
	End       *time.Time
	PartySize int
}

type HoldRequest struct {
	ProductID  string
	Start      time.Time
	End        *time.Time
	PartySize  int
	Duration   time.Duration
	Passengers []cart.Passenger
}

type HoldResult struct {
	HoldID string
	Expiry *time.Time
}

type BookingRequest struct {
	ProductID  string
	HoldID     string
	Customer   customer.Profile
	Start      time.Time
	End        *time.Time
	PartySize  int
	Passengers []cart.Passenger
}

type BookingResult struct {
	ConfirmationCode      string
	ProviderReservationID string
}

type InvoiceRequest struct {
	ProviderReservationID string
	Subtotal              decimal.Decimal
	Tax                   decimal.Decimal
	Total                 decimal.Decimal
	Billing               customer.Profile
}

// ProviderGateway is implemented once per capability; protocol choice is hidden behind it
type ProviderGateway interface {
	Capability() catalog.Capability
	Search(ctx context.Context, svc *catalog.Service, filters SearchFilters) ([]Product, error)
	CheckAvailability(ctx context.Context, svc *catalog.Service, q AvailabilityQuery) (bool, error)
	RegisterExternalCustomer(ctx context.Context, svc *catalog.Service, profile customer.Profile) (string, error)
	CreateHold(ctx context.Context, svc *catalog.Service, req HoldRequest) (HoldResult, error)
	CreateReservation(ctx context.Context, svc *catalog.Service, req BookingRequest) (BookingResult, error)
	GenerateInvoice(ctx context.Context, svc *catalog.Service, req InvoiceRequest) (string, error)
	CancelReservation(ctx context.Context, svc *catalog.Service, confirmationCode string) error
}

type ProviderGateways interface {
	For(capability catalog.Capability) (ProviderGateway, error)
}

// HoldRequestFor copies the logical booking parameters of a cart item
func HoldRequestFor(item *cart.Item, duration time.Duration) HoldRequest {
	return HoldRequest{
		ProductID:  item.ProductID(),
		Start:      item.Start(),
		End:        item.End(),
		PartySize:  item.PartySize(),
		Duration:   duration,
		Passengers: passengersOf(item),
	}
}

func BookingRequestFor(item *cart.Item, holdID string, profile customer.Profile) BookingRequest {
	return BookingRequest{
		ProductID:  item.ProductID(),
		HoldID:     holdID,
		Customer:   profile,
		Start:      item.Start(),
		End:        item.End(),
		PartySize:  item.PartySize(),
		Passengers: passengersOf(item),
	}
}

func AvailabilityQueryFor(item *cart.Item) AvailabilityQuery {
	return AvailabilityQuery{
		ProductID: item.ProductID(),
		Start:     item.Start(),
		End:       item.End(),
		PartySize: item.PartySize(),
	}
}

func passengersOf(item *cart.Item) []cart.Passenger {
	if fp, ok := item.Payload().(cart.FlightPayload); ok {
		return fp.Passengers
	}
	return nil
}
