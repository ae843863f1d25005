package purchase

import (
	"net/url"
	"strings"
	"time"

	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPurchase   = errs.New("invalid purchase")
	ErrInvalidInvoiceURL = errs.New("invalid invoice url")
)

// Purchase records one debited checkout
type Purchase struct {
	id              uuid.UUID
	customerID      uuid.UUID
	customerAccount int64
	total           decimal.Decimal
	invoiceURL      string
	createdAt       time.Time
}

func NewPurchase(customerID uuid.UUID, customerAccount int64, total decimal.Decimal, now time.Time) (*Purchase, error) {
	if customerID == uuid.Nil || customerAccount <= 0 {
		return nil, errs.Mark(errs.New("customer and account are required"), ErrInvalidPurchase)
	}
	if !money.IsPositive(total) {
		return nil, errs.Mark(errs.Newf("total %s must be positive", total), errs.ErrInvalidMoney)
	}
	return &Purchase{
		id:              uuid.New(),
		customerID:      customerID,
		customerAccount: customerAccount,
		total:           money.Round(total),
		createdAt:       now,
	}, nil
}

func ReconstructPurchase(id, customerID uuid.UUID, customerAccount int64, total decimal.Decimal, invoiceURL string, createdAt time.Time) *Purchase {
	return &Purchase{
		id:              id,
		customerID:      customerID,
		customerAccount: customerAccount,
		total:           total,
		invoiceURL:      invoiceURL,
		createdAt:       createdAt,
	}
}

func (p *Purchase) SetInvoiceURL(raw string) error {
	raw = strings.TrimSpace(raw)
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.Mark(errs.Newf("invoice url %q", raw), ErrInvalidInvoiceURL)
	}
	p.invoiceURL = raw
	return nil
}

func (p *Purchase) ID() uuid.UUID          { return p.id }
func (p *Purchase) CustomerID() uuid.UUID  { return p.customerID }
func (p *Purchase) CustomerAccount() int64 { return p.customerAccount }
func (p *Purchase) Total() decimal.Decimal { return p.total }
func (p *Purchase) InvoiceURL() string     { return p.invoiceURL }
func (p *Purchase) CreatedAt() time.Time   { return p.createdAt }

// Link joins a purchase to one of the reservations it produced
type Link struct {
	PurchaseID    uuid.UUID
	ReservationID uuid.UUID
}
