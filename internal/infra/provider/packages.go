package provider

import (
	"context"
	"strconv"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type PackageGateway struct {
	base
}

type packageWire struct {
	PackageID      string          `json:"packageId" xml:"packageId"`
	Title          string          `json:"title" xml:"title"`
	Destination    string          `json:"destination" xml:"destination"`
	StartDate      string          `json:"startDate" xml:"startDate"`
	Nights         int             `json:"nights" xml:"nights"`
	Includes       string          `json:"includes" xml:"includes"`
	PricePerPerson decimal.Decimal `json:"pricePerPerson" xml:"pricePerPerson"`
	Currency       string          `json:"currency" xml:"currency"`
	SpotsLeft      int             `json:"spotsLeft" xml:"spotsLeft"`
}

type packageHoldWire struct {
	PackageID   string `json:"packageId" xml:"packageId"`
	StartDate   string `json:"startDate" xml:"startDate"`
	Persons     int    `json:"persons" xml:"persons"`
	HoldSeconds int    `json:"holdSeconds,omitempty" xml:"holdSeconds,omitempty"`
}

type packageBookingWire struct {
	PackageID string       `json:"packageId" xml:"packageId"`
	HoldID    string       `json:"holdId" xml:"holdId"`
	StartDate string       `json:"startDate" xml:"startDate"`
	Persons   int          `json:"persons" xml:"persons"`
	Traveller customerWire `json:"traveller" xml:"traveller"`
}

func (g *PackageGateway) Capability() catalog.Capability {
	return catalog.CapabilityPackage
}

func (g *PackageGateway) Search(ctx context.Context, svc *catalog.Service, f shared.SearchFilters) ([]shared.Product, error) {
	var out listResult[packageWire]
	req := queryRequest(catalog.OpSearch, map[string]string{
		"destination": firstNonEmpty(f.Destination, f.Location),
		"from":        formatDate(f.From),
		"to":          formatDate(f.To),
		"persons":     itoa(f.PartySize),
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
			Capability:  catalog.CapabilityPackage,
			ProductID:   w.PackageID,
			Name:        w.Title,
			Description: w.Includes,
			Location:    w.Destination,
			StartsAt:    parseTimePtr(w.StartDate),
			UnitPrice:   w.PricePerPerson,
			Currency:    w.Currency,
			Available:   w.SpotsLeft,
			Attributes:  map[string]string{"nights": strconv.Itoa(w.Nights)},
		})
	}
	return products, nil
}

func (g *PackageGateway) CheckAvailability(ctx context.Context, svc *catalog.Service, q shared.AvailabilityQuery) (bool, error) {
	return g.availability(ctx, svc, map[string]string{
		"packageId": q.ProductID,
		"startDate": formatDate(&q.Start),
		"persons":   itoa(q.PartySize),
	})
}

func (g *PackageGateway) CreateHold(ctx context.Context, svc *catalog.Service, req shared.HoldRequest) (shared.HoldResult, error) {
	return g.hold(ctx, svc, packageHoldWire{
		PackageID:   req.ProductID,
		StartDate:   formatDate(&req.Start),
		Persons:     req.PartySize,
		HoldSeconds: holdSeconds(req.Duration),
	}, req.Duration)
}

func (g *PackageGateway) CreateReservation(ctx context.Context, svc *catalog.Service, req shared.BookingRequest) (shared.BookingResult, error) {
	return g.book(ctx, svc, packageBookingWire{
		PackageID: req.ProductID,
		HoldID:    req.HoldID,
		StartDate: formatDate(&req.Start),
		Persons:   req.PartySize,
		Traveller: toCustomerWire(req.Customer),
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
