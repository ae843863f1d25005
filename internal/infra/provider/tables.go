package provider

import (
	"context"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type TableGateway struct {
	base
}

type tableWire struct {
	TableID    string          `json:"tableId" xml:"tableId"`
	Restaurant string          `json:"restaurant" xml:"restaurant"`
	City       string          `json:"city" xml:"city"`
	Cuisine    string          `json:"cuisine" xml:"cuisine"`
	Seats      int             `json:"seats" xml:"seats"`
	SlotAt     string          `json:"slotAt" xml:"slotAt"`
	Price      decimal.Decimal `json:"price" xml:"price"`
	Currency   string          `json:"currency" xml:"currency"`
}

type tableHoldWire struct {
	TableID     string `json:"tableId" xml:"tableId"`
	SlotAt      string `json:"slotAt" xml:"slotAt"`
	Guests      int    `json:"guests" xml:"guests"`
	HoldSeconds int    `json:"holdSeconds,omitempty" xml:"holdSeconds,omitempty"`
}

type tableBookingWire struct {
	TableID string       `json:"tableId" xml:"tableId"`
	HoldID  string       `json:"holdId" xml:"holdId"`
	SlotAt  string       `json:"slotAt" xml:"slotAt"`
	Guests  int          `json:"guests" xml:"guests"`
	Diner   customerWire `json:"diner" xml:"diner"`
}

func (g *TableGateway) Capability() catalog.Capability {
	return catalog.CapabilityTable
}

func (g *TableGateway) Search(ctx context.Context, svc *catalog.Service, f shared.SearchFilters) ([]shared.Product, error) {
	var out listResult[tableWire]
	req := queryRequest(catalog.OpSearch, map[string]string{
		"city":     f.Location,
		"date":     formatDate(f.From),
		"guests":   itoa(f.PartySize),
		"cuisine":  f.Category,
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
			Capability:  catalog.CapabilityTable,
			ProductID:   w.TableID,
			Name:        w.Restaurant,
			Location:    w.City,
			StartsAt:    parseTimePtr(w.SlotAt),
			UnitPrice:   w.Price,
			Currency:    w.Currency,
			Available:   w.Seats,
			Attributes:  map[string]string{"cuisine": w.Cuisine},
		})
	}
	return products, nil
}

func (g *TableGateway) CheckAvailability(ctx context.Context, svc *catalog.Service, q shared.AvailabilityQuery) (bool, error) {
	return g.availability(ctx, svc, map[string]string{
		"tableId": q.ProductID,
		"slotAt":  formatTime(q.Start),
		"guests":  itoa(q.PartySize),
	})
}

func (g *TableGateway) CreateHold(ctx context.Context, svc *catalog.Service, req shared.HoldRequest) (shared.HoldResult, error) {
	return g.hold(ctx, svc, tableHoldWire{
		TableID:     req.ProductID,
		SlotAt:      formatTime(req.Start),
		Guests:      req.PartySize,
		HoldSeconds: holdSeconds(req.Duration),
	}, req.Duration)
}

func (g *TableGateway) CreateReservation(ctx context.Context, svc *catalog.Service, req shared.BookingRequest) (shared.BookingResult, error) {
	return g.book(ctx, svc, tableBookingWire{
		TableID: req.ProductID,
		HoldID:  req.HoldID,
		SlotAt:  formatTime(req.Start),
		Guests:  req.PartySize,
		Diner:   toCustomerWire(req.Customer),
	})
}
