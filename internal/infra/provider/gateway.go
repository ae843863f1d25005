package provider

import (
	"context"
	"strings"
	"time"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/customer"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Registry resolves the gateway of a capability
type Registry struct {
	gateways map[catalog.Capability]shared.ProviderGateway
}

func NewRegistry(inv *Invoker, clk clock.Clock, booking config.BookingConfig) *Registry {
	b := base{invoker: inv, clock: clk, holdFallback: booking.HoldDuration()}
	return NewRegistryWith(
		&FlightGateway{base: b},
		&HotelGateway{base: b},
		&VehicleGateway{base: b},
		&TableGateway{base: b},
		&PackageGateway{base: b},
	)
}

func NewRegistryWith(gateways ...shared.ProviderGateway) *Registry {
	m := make(map[catalog.Capability]shared.ProviderGateway, len(gateways))
	for _, g := range gateways {
		m[g.Capability()] = g
	}
	return &Registry{gateways: m}
}

func (r *Registry) For(capability catalog.Capability) (shared.ProviderGateway, error) {
	g, ok := r.gateways[capability]
	if !ok {
		return nil, errs.Mark(errs.Newf("capability %s", capability), shared.ErrNoGateway)
	}
	return g, nil
}

// base holds the operations whose wire shape is common to every capability
type base struct {
	invoker      *Invoker
	clock        clock.Clock
	holdFallback time.Duration
}

type customerWire struct {
	FirstName      string `json:"firstName" xml:"firstName"`
	LastName       string `json:"lastName" xml:"lastName"`
	Email          string `json:"email" xml:"email"`
	DocumentType   string `json:"documentType,omitempty" xml:"documentType,omitempty"`
	DocumentNumber string `json:"documentNumber" xml:"documentNumber"`
	BirthDate      string `json:"birthDate,omitempty" xml:"birthDate,omitempty"`
}

func toCustomerWire(p customer.Profile) customerWire {
	w := customerWire{
		FirstName:      p.FirstName(),
		LastName:       p.LastName(),
		Email:          p.Email(),
		DocumentType:   p.DocumentType(),
		DocumentNumber: p.DocumentNumber(),
	}
	if bd := p.BirthDate(); bd != nil {
		w.BirthDate = bd.Format(dateLayout)
	}
	return w
}

type registerCustomerResponse struct {
	CustomerID string `json:"customerId" xml:"customerId"`
}

func (b base) RegisterExternalCustomer(ctx context.Context, svc *catalog.Service, profile customer.Profile) (string, error) {
	var out registerCustomerResponse
	req := Request{Operation: catalog.OpRegisterCustomer, Body: toCustomerWire(profile)}
	if _, err := b.invoker.Invoke(ctx, svc, req, &out); err != nil {
		return "", err
	}
	if out.CustomerID == "" {
		return "", errs.Mark(errs.New("provider returned no customer id"), shared.ErrProviderUnavailable)
	}
	return out.CustomerID, nil
}

type invoiceRequestWire struct {
	ReservationID string          `json:"reservationId" xml:"reservationId"`
	Subtotal      decimal.Decimal `json:"subtotal" xml:"subtotal"`
	Tax           decimal.Decimal `json:"tax" xml:"tax"`
	Total         decimal.Decimal `json:"total" xml:"total"`
	Billing       customerWire    `json:"billing" xml:"billing"`
}

type invoiceResponse struct {
	InvoiceURL string `json:"invoiceUrl" xml:"invoiceUrl"`
}

func (b base) GenerateInvoice(ctx context.Context, svc *catalog.Service, in shared.InvoiceRequest) (string, error) {
	var out invoiceResponse
	req := Request{Operation: catalog.OpGenerateInvoice, Body: invoiceRequestWire{
		ReservationID: in.ProviderReservationID,
		Subtotal:      in.Subtotal,
		Tax:           in.Tax,
		Total:         in.Total,
		Billing:       toCustomerWire(in.Billing),
	}}
	if _, err := b.invoker.Invoke(ctx, svc, req, &out); err != nil {
		return "", err
	}
	return out.InvoiceURL, nil
}

type cancelRequestWire struct {
	ConfirmationCode string `json:"confirmationCode" xml:"confirmationCode"`
}

type cancelResponse struct {
	Cancelled bool   `json:"cancelled" xml:"cancelled"`
	Message   string `json:"message,omitempty" xml:"message,omitempty"`
}

// CancelReservation always speaks REST, whatever the preferred protocol
func (b base) CancelReservation(ctx context.Context, svc *catalog.Service, confirmationCode string) error {
	detail, ok := svc.CancellationDetail()
	if !ok {
		return errs.Mark(errs.Newf("service %s has no REST cancel endpoint", svc.ID()), shared.ErrProtocolNotSupported)
	}
	var out cancelResponse
	req := Request{Operation: catalog.OpCancelReservation, Body: cancelRequestWire{ConfirmationCode: confirmationCode}}
	if _, err := b.invoker.InvokeOn(ctx, svc, detail, req, &out); err != nil {
		return err
	}
	if !out.Cancelled {
		return errs.Mark(errs.Newf("cancellation refused: %s", out.Message), shared.ErrProviderRejected)
	}
	return nil
}

type availabilityResponse struct {
	Available bool `json:"available" xml:"available"`
}

type holdResponse struct {
	HoldID    string `json:"holdId" xml:"holdId"`
	ExpiresAt string `json:"expiresAt" xml:"expiresAt"`
}

type bookingResponse struct {
	ConfirmationCode string `json:"confirmationCode" xml:"confirmationCode"`
	ReservationID    string `json:"reservationId" xml:"reservationId"`
}

func (b base) availability(ctx context.Context, svc *catalog.Service, query map[string]string) (bool, error) {
	var out availabilityResponse
	if _, err := b.invoker.Invoke(ctx, svc, queryRequest(catalog.OpCheckAvailability, query), &out); err != nil {
		return false, err
	}
	return out.Available, nil
}

func (b base) hold(ctx context.Context, svc *catalog.Service, body any, duration time.Duration) (shared.HoldResult, error) {
	var out holdResponse
	outcome, err := b.invoker.Invoke(ctx, svc, Request{Operation: catalog.OpCreateHold, Body: body}, &out)
	if err != nil {
		return shared.HoldResult{}, err
	}
	if out.HoldID == "" {
		return shared.HoldResult{}, errs.Mark(errs.New("provider returned no hold id"), shared.ErrProviderUnavailable)
	}
	return shared.HoldResult{HoldID: out.HoldID, Expiry: b.holdExpiry(out.ExpiresAt, outcome, duration)}, nil
}

// holdExpiry: absent means non-expiring; an unparsable REST value falls back to now + duration
func (b base) holdExpiry(raw string, outcome Outcome, duration time.Duration) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, ok := parseTime(raw); ok {
		return &t
	}
	if outcome.Protocol != catalog.ProtocolREST {
		return nil
	}
	if duration <= 0 {
		duration = b.holdFallback
	}
	t := b.clock.Now().Add(duration)
	return &t
}

func (b base) book(ctx context.Context, svc *catalog.Service, body any) (shared.BookingResult, error) {
	var out bookingResponse
	if _, err := b.invoker.Invoke(ctx, svc, Request{Operation: catalog.OpCreateReservation, Body: body}, &out); err != nil {
		return shared.BookingResult{}, err
	}
	if out.ConfirmationCode == "" {
		return shared.BookingResult{}, errs.Mark(errs.New("provider returned no confirmation code"), shared.ErrProviderRejected)
	}
	return shared.BookingResult{ConfirmationCode: out.ConfirmationCode, ProviderReservationID: out.ReservationID}, nil
}

func queryRequest(op catalog.Operation, params map[string]string) Request {
	return Request{Operation: op, Query: toValues(params), Body: paramsWire(params)}
}

func holdSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", dateLayout}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseTimePtr(s string) *time.Time {
	if t, ok := parseTime(strings.TrimSpace(s)); ok {
		return &t
	}
	return nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
