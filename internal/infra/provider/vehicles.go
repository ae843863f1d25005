package provider

import (
	"context"
	"strconv"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type VehicleGateway struct {
	base
}

type vehicleWire struct {
	VehicleID    string          `json:"vehicleId" xml:"vehicleId"`
	Make         string          `json:"make" xml:"make"`
	Model        string          `json:"model" xml:"model"`
	Category     string          `json:"category" xml:"category"`
	Seats        int             `json:"seats" xml:"seats"`
	City         string          `json:"city" xml:"city"`
	Transmission string          `json:"transmission" xml:"transmission"`
	PricePerDay  decimal.Decimal `json:"pricePerDay" xml:"pricePerDay"`
	Currency     string          `json:"currency" xml:"currency"`
	Units        int             `json:"units" xml:"units"`
}

type vehicleHoldWire struct {
	VehicleID   string `json:"vehicleId" xml:"vehicleId"`
	PickupAt    string `json:"pickupAt" xml:"pickupAt"`
	ReturnAt    string `json:"returnAt" xml:"returnAt"`
	HoldSeconds int    `json:"holdSeconds,omitempty" xml:"holdSeconds,omitempty"`
}

type vehicleBookingWire struct {
	VehicleID string       `json:"vehicleId" xml:"vehicleId"`
	HoldID    string       `json:"holdId" xml:"holdId"`
	PickupAt  string       `json:"pickupAt" xml:"pickupAt"`
	ReturnAt  string       `json:"returnAt" xml:"returnAt"`
	Driver    customerWire `json:"driver" xml:"driver"`
}

func (g *VehicleGateway) Capability() catalog.Capability {
	return catalog.CapabilityVehicle
}

func (g *VehicleGateway) Search(ctx context.Context, svc *catalog.Service, f shared.SearchFilters) ([]shared.Product, error) {
	var out listResult[vehicleWire]
	req := queryRequest(catalog.OpSearch, map[string]string{
		"city":     f.Location,
		"pickup":   formatDate(f.From),
		"return":   formatDate(f.To),
		"category": f.Category,
		"seats":    itoa(f.PartySize),
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
			Capability:  catalog.CapabilityVehicle,
			ProductID:   w.VehicleID,
			Name:        w.Make + " " + w.Model,
			Location:    w.City,
			UnitPrice:   w.PricePerDay,
			Currency:    w.Currency,
			Available:   w.Units,
			Attributes: map[string]string{
				"category":     w.Category,
				"seats":        strconv.Itoa(w.Seats),
				"transmission": w.Transmission,
			},
		})
	}
	return products, nil
}

func (g *VehicleGateway) CheckAvailability(ctx context.Context, svc *catalog.Service, q shared.AvailabilityQuery) (bool, error) {
	return g.availability(ctx, svc, map[string]string{
		"vehicleId": q.ProductID,
		"pickupAt":  formatTime(q.Start),
		"returnAt":  formatTimePtr(q.End),
	})
}

func (g *VehicleGateway) CreateHold(ctx context.Context, svc *catalog.Service, req shared.HoldRequest) (shared.HoldResult, error) {
	return g.hold(ctx, svc, vehicleHoldWire{
		VehicleID:   req.ProductID,
		PickupAt:    formatTime(req.Start),
		ReturnAt:    formatTimePtr(req.End),
		HoldSeconds: holdSeconds(req.Duration),
	}, req.Duration)
}

func (g *VehicleGateway) CreateReservation(ctx context.Context, svc *catalog.Service, req shared.BookingRequest) (shared.BookingResult, error) {
	return g.book(ctx, svc, vehicleBookingWire{
		VehicleID: req.ProductID,
		HoldID:    req.HoldID,
		PickupAt:  formatTime(req.Start),
		ReturnAt:  formatTimePtr(req.End),
		Driver:    toCustomerWire(req.Customer),
	})
}
