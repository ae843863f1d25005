package provider

import (
	"context"
	"strconv"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type HotelGateway struct {
	base
}

type roomWire struct {
	RoomID        string          `json:"roomId" xml:"roomId"`
	HotelName     string          `json:"hotelName" xml:"hotelName"`
	City          string          `json:"city" xml:"city"`
	Address       string          `json:"address" xml:"address"`
	RoomType      string          `json:"roomType" xml:"roomType"`
	Capacity      int             `json:"capacity" xml:"capacity"`
	Stars         int             `json:"stars" xml:"stars"`
	PricePerNight decimal.Decimal `json:"pricePerNight" xml:"pricePerNight"`
	Currency      string          `json:"currency" xml:"currency"`
	Description   string          `json:"description" xml:"description"`
}

type roomHoldWire struct {
	RoomID      string `json:"roomId" xml:"roomId"`
	CheckIn     string `json:"checkIn" xml:"checkIn"`
	CheckOut    string `json:"checkOut" xml:"checkOut"`
	Guests      int    `json:"guests" xml:"guests"`
	HoldSeconds int    `json:"holdSeconds,omitempty" xml:"holdSeconds,omitempty"`
}

type roomBookingWire struct {
	RoomID   string       `json:"roomId" xml:"roomId"`
	HoldID   string       `json:"holdId" xml:"holdId"`
	CheckIn  string       `json:"checkIn" xml:"checkIn"`
	CheckOut string       `json:"checkOut" xml:"checkOut"`
	Guests   int          `json:"guests" xml:"guests"`
	Guest    customerWire `json:"guest" xml:"guest"`
}

func (g *HotelGateway) Capability() catalog.Capability {
	return catalog.CapabilityHotel
}

func (g *HotelGateway) Search(ctx context.Context, svc *catalog.Service, f shared.SearchFilters) ([]shared.Product, error) {
	var out listResult[roomWire]
	req := queryRequest(catalog.OpSearch, map[string]string{
		"city":     f.Location,
		"checkIn":  formatDate(f.From),
		"checkOut": formatDate(f.To),
		"guests":   itoa(f.PartySize),
		"roomType": f.Category,
		"minPrice": decimalParam(f.MinPrice),
		"maxPrice": decimalParam(f.MaxPrice),
	})
	if _, err := g.invoker.Invoke(ctx, svc, req, &out); err != nil {
		return nil, err
	}

	products := make([]shared.Product, 0, len(out.Items))
	for _, w := range out.Items {
		products = append(products, shared.Product{
			ServiceID:   svc.ID(),
			ServiceName: svc.Name(),
			Capability:  catalog.CapabilityHotel,
			ProductID:   w.RoomID,
			Name:        w.HotelName + " " + w.RoomType,
			Description: w.Description,
			Location:    w.City,
			UnitPrice:   w.PricePerNight,
			Currency:    w.Currency,
			Available:   w.Capacity,
			Attributes: map[string]string{
				"address":  w.Address,
				"roomType": w.RoomType,
				"stars":    strconv.Itoa(w.Stars),
			},
		})
	}
	return products, nil
}

func (g *HotelGateway) CheckAvailability(ctx context.Context, svc *catalog.Service, q shared.AvailabilityQuery) (bool, error) {
	return g.availability(ctx, svc, map[string]string{
		"roomId":   q.ProductID,
		"checkIn":  formatDate(&q.Start),
		"checkOut": formatDate(q.End),
		"guests":   itoa(q.PartySize),
	})
}

func (g *HotelGateway) CreateHold(ctx context.Context, svc *catalog.Service, req shared.HoldRequest) (shared.HoldResult, error) {
	return g.hold(ctx, svc, roomHoldWire{
		RoomID:      req.ProductID,
		CheckIn:     formatDate(&req.Start),
		CheckOut:    formatDate(req.End),
		Guests:      req.PartySize,
		HoldSeconds: holdSeconds(req.Duration),
	}, req.Duration)
}

func (g *HotelGateway) CreateReservation(ctx context.Context, svc *catalog.Service, req shared.BookingRequest) (shared.BookingResult, error) {
	return g.book(ctx, svc, roomBookingWire{
		RoomID:   req.ProductID,
		HoldID:   req.HoldID,
		CheckIn:  formatDate(&req.Start),
		CheckOut: formatDate(req.End),
		Guests:   req.PartySize,
		Guest:    toCustomerWire(req.Customer),
	})
}
