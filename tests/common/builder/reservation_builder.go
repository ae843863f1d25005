//go:build unit || e2e

package builder

import (
	"time"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationBuilder struct {
	ID                    uuid.UUID
	ServiceID             uuid.UUID
	CustomerID            uuid.UUID
	Capability            catalog.Capability
	ProductID             string
	ProductName           string
	ConfirmationCode      string
	ProviderReservationID string
	InvoiceURL            string
	Active                bool
	AmountPaidToBusiness  decimal.Decimal
	PlatformCommission    decimal.Decimal
	CustomerAccount       int64
	CreatedAt             time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:                    uuid.New(),
		ServiceID:             uuid.New(),
		CustomerID:            uuid.New(),
		Capability:            catalog.CapabilityHotel,
		ProductID:             "room-101",
		ProductName:           "Harbor Hotel Double",
		ConfirmationCode:      "CONF-1",
		ProviderReservationID: "PR-1",
		Active:                true,
		AmountPaidToBusiness:  decimal.NewFromInt(180),
		PlatformCommission:    decimal.NewFromInt(20),
		CustomerAccount:       1001,
		CreatedAt:             created,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) Cancelled() *ReservationBuilder {
	b.Active = false
	return b
}

func (b *ReservationBuilder) Build() *reservation.Reservation {
	return reservation.ReconstructReservation(reservation.ReconstructParams{
		ID:                    b.ID,
		ServiceID:             b.ServiceID,
		CustomerID:            b.CustomerID,
		Capability:            b.Capability,
		ProductID:             b.ProductID,
		ProductName:           b.ProductName,
		ConfirmationCode:      b.ConfirmationCode,
		ProviderReservationID: b.ProviderReservationID,
		InvoiceURL:            b.InvoiceURL,
		Active:                b.Active,
		AmountPaidToBusiness:  b.AmountPaidToBusiness,
		PlatformCommission:    b.PlatformCommission,
		CustomerAccount:       b.CustomerAccount,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.CreatedAt,
	})
}
