package shared

import (
	"context"
	"encoding/json"
	"time"

	"booking-orchestrator/internal/pkg/errs"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
	EventPurchaseSettled      = "purchase.settled"

	HeaderEventType = "event_type"
)

type ReservationConfirmedEvent struct {
	ReservationID    uuid.UUID `json:"reservation_id"`
	PurchaseID       uuid.UUID `json:"purchase_id"`
	CustomerID       uuid.UUID `json:"customer_id"`
	ServiceID        uuid.UUID `json:"service_id"`
	Capability       string    `json:"capability"`
	ConfirmationCode string    `json:"confirmation_code"`
	Amount           string    `json:"amount"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type ReservationCancelledEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	ServiceID     uuid.UUID `json:"service_id"`
	Refunded      string    `json:"refunded"`
	ProviderStep  string    `json:"provider_step"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type PurchaseSettledEvent struct {
	PurchaseID     uuid.UUID   `json:"purchase_id"`
	CustomerID     uuid.UUID   `json:"customer_id"`
	Total          string      `json:"total"`
	Reservations   []uuid.UUID `json:"reservations"`
	RefundRequired bool        `json:"refund_required"`
	OccurredAt     time.Time   `json:"occurred_at"`
}

// NewOutboxEvent serializes payload and carries the current trace context in the headers
func NewOutboxEvent(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any, now time.Time) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, errs.Wrapf(err, "marshal %s", eventType)
	}
	headers := map[string]string{HeaderEventType: eventType}
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

	return OutboxEvent{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     body,
		Headers:     headers,
		CreatedAt:   now,
	}, nil
}
