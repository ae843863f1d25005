package provider

import (
	"context"
	"strconv"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type FlightGateway struct {
	base
}

type flightWire struct {
	FlightID      string          `json:"flightId" xml:"flightId"`
	Airline       string          `json:"airline" xml:"airline"`
	Origin        string          `json:"origin" xml:"origin"`
	Destination   string          `json:"destination" xml:"destination"`
	DepartureAt   string          `json:"departureAt" xml:"departureAt"`
	ArrivalAt     string          `json:"arrivalAt" xml:"arrivalAt"`
	CabinClass    string          `json:"cabinClass" xml:"cabinClass"`
	SeatsLeft     int             `json:"seatsLeft" xml:"seatsLeft"`
	NormalPrice   decimal.Decimal `json:"normalPrice" xml:"normalPrice"`
	CurrentPrice  decimal.Decimal `json:"currentPrice" xml:"currentPrice"`
	Currency      string          `json:"currency" xml:"currency"`
	BaggageWeight int             `json:"baggageKg,omitempty" xml:"baggageKg,omitempty"`
}

type passengerWire struct {
	FirstName      string `json:"firstName" xml:"firstName"`
	LastName       string `json:"lastName" xml:"lastName"`
	DocumentType   string `json:"documentType" xml:"documentType"`
	DocumentNumber string `json:"documentNumber" xml:"documentNumber"`
	BirthDate      string `json:"birthDate,omitempty" xml:"birthDate,omitempty"`
}

type flightHoldWire struct {
	FlightID    string          `json:"flightId" xml:"flightId"`
	Passengers  []passengerWire `json:"passengers" xml:"passengers>passenger"`
	HoldSeconds int             `json:"holdSeconds,omitempty" xml:"holdSeconds,omitempty"`
}

type flightBookingWire struct {
	FlightID   string          `json:"flightId" xml:"flightId"`
	HoldID     string          `json:"holdId" xml:"holdId"`
	Passengers []passengerWire `json:"passengers" xml:"passengers>passenger"`
	Contact    customerWire    `json:"contact" xml:"contact"`
}

func (g *FlightGateway) Capability() catalog.Capability {
	return catalog.CapabilityFlight
}

func (g *FlightGateway) Search(ctx context.Context, svc *catalog.Service, f shared.SearchFilters) ([]shared.Product, error) {
	var out listResult[flightWire]
	req := queryRequest(catalog.OpSearch, map[string]string{
		"origin":      f.Location,
		"destination": f.Destination,
		"date":        formatDate(f.From),
		"cabinClass":  f.Category,
		"passengers":  itoa(f.PartySize),
		"minPrice":    decimalParam(f.MinPrice),
		"maxPrice":    decimalParam(f.MaxPrice),
	})
	if _, err := g.invoker.Invoke(ctx, svc, req, &out); err != nil {
		return nil, err
	}

	products := make([]shared.Product, 0, len(out.Items))
	for _, w := range out.Items {
		products = append(products, shared.Product{
			ServiceID:   svc.ID(),
			ServiceName: svc.Name(),
			Capability:  catalog.CapabilityFlight,
			ProductID:   w.FlightID,
			Name:        w.Airline + " " + w.Origin + "-" + w.Destination,
			Location:    w.Origin,
			StartsAt:    parseTimePtr(w.DepartureAt),
			UnitPrice:   effectivePrice(w.CurrentPrice, w.NormalPrice),
			Currency:    w.Currency,
			Available:   w.SeatsLeft,
			Attributes: map[string]string{
				"destination": w.Destination,
				"arrivalAt":   w.ArrivalAt,
				"cabinClass":  w.CabinClass,
				"normalPrice": w.NormalPrice.String(),
				"baggageKg":   strconv.Itoa(w.BaggageWeight),
			},
		})
	}
	return products, nil
}

func (g *FlightGateway) CheckAvailability(ctx context.Context, svc *catalog.Service, q shared.AvailabilityQuery) (bool, error) {
	return g.availability(ctx, svc, map[string]string{
		"flightId":   q.ProductID,
		"passengers": itoa(q.PartySize),
	})
}

func (g *FlightGateway) CreateHold(ctx context.Context, svc *catalog.Service, req shared.HoldRequest) (shared.HoldResult, error) {
	return g.hold(ctx, svc, flightHoldWire{
		FlightID:    req.ProductID,
		Passengers:  toPassengerWires(req.Passengers),
		HoldSeconds: holdSeconds(req.Duration),
	}, req.Duration)
}

func (g *FlightGateway) CreateReservation(ctx context.Context, svc *catalog.Service, req shared.BookingRequest) (shared.BookingResult, error) {
	return g.book(ctx, svc, flightBookingWire{
		FlightID:   req.ProductID,
		HoldID:     req.HoldID,
		Passengers: toPassengerWires(req.Passengers),
		Contact:    toCustomerWire(req.Customer),
	})
}

func toPassengerWires(ps []cart.Passenger) []passengerWire {
	out := make([]passengerWire, 0, len(ps))
	for _, p := range ps {
		w := passengerWire{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			DocumentType:   p.DocumentType,
			DocumentNumber: p.DocumentNumber,
		}
		if !p.BirthDate.IsZero() {
			w.BirthDate = p.BirthDate.Format(dateLayout)
		}
		out = append(out, w)
	}
	return out
}

// effectivePrice prefers the discounted price when the provider sends one
func effectivePrice(current, normal decimal.Decimal) decimal.Decimal {
	if current.IsPositive() {
		return current
	}
	return normal
}
