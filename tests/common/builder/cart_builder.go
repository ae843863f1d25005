//go:build unit || e2e

package builder

import (
	"time"

	"booking-orchestrator/internal/domain/cart"
	reqdto "booking-orchestrator/internal/handler/dto/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItemBuilder struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	ServiceID   uuid.UUID
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Currency    string
	Start       time.Time
	End         *time.Time
	Hold        *cart.Hold
	Payload     cart.Payload
	CreatedAt   time.Time
}

func NewCartItemBuilder() *CartItemBuilder {
	start := time.Date(2026, 11, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	return &CartItemBuilder{
		ID:          uuid.New(),
		CustomerID:  uuid.New(),
		ServiceID:   uuid.New(),
		ProductID:   "room-101",
		ProductName: "Harbor Hotel Double",
		UnitPrice:   decimal.NewFromInt(200),
		Currency:    "USD",
		Start:       start,
		End:         &end,
		Payload:     cart.HotelPayload{RoomType: "double", Guests: 2},
		CreatedAt:   start.Add(-72 * time.Hour),
	}
}

func (b *CartItemBuilder) With(mutate func(*CartItemBuilder)) *CartItemBuilder {
	mutate(b)
	return b
}

func (b *CartItemBuilder) WithHold(id string, expiry *time.Time) *CartItemBuilder {
	b.Hold = &cart.Hold{ID: id, Expiry: expiry}
	return b
}

func (b *CartItemBuilder) WithoutHold() *CartItemBuilder {
	b.Hold = nil
	return b
}

func (b *CartItemBuilder) WithPrice(amount string) *CartItemBuilder {
	b.UnitPrice = decimal.RequireFromString(amount)
	return b
}

// AsTable switches the item to a flat-priced restaurant table
func (b *CartItemBuilder) AsTable() *CartItemBuilder {
	b.End = nil
	b.Payload = cart.TablePayload{Guests: 2}
	b.ProductID = "table-7"
	b.ProductName = "Bistro corner table"
	return b
}

func (b *CartItemBuilder) AsFlight(passengers ...cart.Passenger) *CartItemBuilder {
	if len(passengers) == 0 {
		passengers = []cart.Passenger{{FirstName: "Ada", LastName: "Lovelace", DocumentType: "passport", DocumentNumber: "P123"}}
	}
	b.End = nil
	b.Payload = cart.FlightPayload{Origin: "LIS", Destination: "MAD", CabinClass: "economy", Passengers: passengers}
	b.ProductID = "TP1024"
	b.ProductName = "LIS-MAD"
	return b
}

func (b *CartItemBuilder) NewParams() cart.NewItemParams {
	return cart.NewItemParams{
		CustomerID:  b.CustomerID,
		ServiceID:   b.ServiceID,
		ProductID:   b.ProductID,
		ProductName: b.ProductName,
		UnitPrice:   b.UnitPrice,
		Currency:    b.Currency,
		Start:       b.Start,
		End:         b.End,
		Payload:     b.Payload,
	}
}

func (b *CartItemBuilder) BuildNew(now time.Time) (*cart.Item, error) {
	return cart.NewItem(b.NewParams(), now)
}

// Build reconstructs the item as if loaded from the store
func (b *CartItemBuilder) Build() *cart.Item {
	return cart.ReconstructItem(cart.ReconstructParams{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		ServiceID:   b.ServiceID,
		ProductID:   b.ProductID,
		ProductName: b.ProductName,
		UnitPrice:   b.UnitPrice,
		Currency:    b.Currency,
		Start:       b.Start,
		End:         b.End,
		Hold:        b.Hold,
		Payload:     b.Payload,
		CreatedAt:   b.CreatedAt,
	})
}

// BuildAddRequestDTO renders the item as the body of POST /api/cart/items
func (b *CartItemBuilder) BuildAddRequestDTO() reqdto.AddCartItemRequest {
	raw, err := cart.MarshalPayload(b.Payload)
	if err != nil {
		panic(err)
	}
	return reqdto.AddCartItemRequest{
		ServiceID:   b.ServiceID,
		Capability:  b.Payload.Capability().String(),
		ProductID:   b.ProductID,
		ProductName: b.ProductName,
		UnitPrice:   b.UnitPrice,
		Currency:    b.Currency,
		Start:       b.Start,
		End:         b.End,
		Payload:     raw,
	}
}
