package reservation

import (
	"strings"
	"time"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSplit       = errs.New("invalid commission split")
	ErrInvalidReservation = errs.New("invalid reservation")
	ErrAlreadyCancelled   = errs.New("reservation is already cancelled")
)

type Reservation struct {
	id                    uuid.UUID
	serviceID             uuid.UUID
	customerID            uuid.UUID
	capability            catalog.Capability
	productID             string
	productName           string
	confirmationCode      string
	providerReservationID string
	invoiceURL            string
	active                bool
	split                 Split
	customerAccount       int64
	createdAt             time.Time
	updatedAt             time.Time
}

type NewParams struct {
	ServiceID             uuid.UUID
	CustomerID            uuid.UUID
	Capability            catalog.Capability
	ProductID             string
	ProductName           string
	ConfirmationCode      string
	ProviderReservationID string
	InvoiceURL            string
	Split                 Split
	CustomerAccount       int64
}

// NewReservation builds a confirmed, active booking
func NewReservation(p NewParams, now time.Time) (*Reservation, error) {
	if p.ServiceID == uuid.Nil || p.CustomerID == uuid.Nil {
		return nil, errs.Mark(errs.New("service and customer are required"), ErrInvalidReservation)
	}
	if strings.TrimSpace(p.ConfirmationCode) == "" && strings.TrimSpace(p.ProviderReservationID) == "" {
		return nil, errs.Mark(errs.New("provider returned no confirmation"), ErrInvalidReservation)
	}
	if !p.Split.Business().Add(p.Split.Commission()).Equal(p.Split.Amount()) {
		return nil, errs.Mark(errs.New("shares do not add up to the item amount"), ErrInvalidSplit)
	}
	if p.CustomerAccount <= 0 {
		return nil, errs.Mark(errs.New("customer account is required"), ErrInvalidReservation)
	}

	return &Reservation{
		id:                    uuid.New(),
		serviceID:             p.ServiceID,
		customerID:            p.CustomerID,
		capability:            p.Capability,
		productID:             p.ProductID,
		productName:           p.ProductName,
		confirmationCode:      p.ConfirmationCode,
		providerReservationID: p.ProviderReservationID,
		invoiceURL:            p.InvoiceURL,
		active:                true,
		split:                 p.Split,
		customerAccount:       p.CustomerAccount,
		createdAt:             now,
		updatedAt:             now,
	}, nil
}

type ReconstructParams struct {
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
	UpdatedAt             time.Time
}

func ReconstructReservation(p ReconstructParams) *Reservation {
	return &Reservation{
		id:                    p.ID,
		serviceID:             p.ServiceID,
		customerID:            p.CustomerID,
		capability:            p.Capability,
		productID:             p.ProductID,
		productName:           p.ProductName,
		confirmationCode:      p.ConfirmationCode,
		providerReservationID: p.ProviderReservationID,
		invoiceURL:            p.InvoiceURL,
		active:                p.Active,
		split:                 ReconstructSplit(p.AmountPaidToBusiness, p.PlatformCommission),
		customerAccount:       p.CustomerAccount,
		createdAt:             p.CreatedAt,
		updatedAt:             p.UpdatedAt,
	}
}

// Cancel flips the reservation to inactive; it is the only mutation after creation
func (r *Reservation) Cancel(now time.Time) error {
	if !r.active {
		return ErrAlreadyCancelled
	}
	r.active = false
	r.updatedAt = now
	return nil
}

func (r *Reservation) ID() uuid.UUID                         { return r.id }
func (r *Reservation) ServiceID() uuid.UUID                  { return r.serviceID }
func (r *Reservation) CustomerID() uuid.UUID                 { return r.customerID }
func (r *Reservation) Capability() catalog.Capability        { return r.capability }
func (r *Reservation) ProductID() string                     { return r.productID }
func (r *Reservation) ProductName() string                   { return r.productName }
func (r *Reservation) ConfirmationCode() string              { return r.confirmationCode }
func (r *Reservation) ProviderReservationID() string         { return r.providerReservationID }
func (r *Reservation) InvoiceURL() string                    { return r.invoiceURL }
func (r *Reservation) IsActive() bool                        { return r.active }
func (r *Reservation) AmountPaidToBusiness() decimal.Decimal { return r.split.Business() }
func (r *Reservation) PlatformCommission() decimal.Decimal   { return r.split.Commission() }
func (r *Reservation) Amount() decimal.Decimal               { return r.split.Amount() }
func (r *Reservation) CustomerAccount() int64                { return r.customerAccount }
func (r *Reservation) CreatedAt() time.Time                  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time                  { return r.updatedAt }
