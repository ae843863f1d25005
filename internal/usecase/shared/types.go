package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key              uuid.UUID
	CustomerID       uuid.UUID
	Endpoint         string
	Status           string
	RequestHash      string
	ResultPurchaseID *uuid.UUID
	ResponseBody     []byte
	ExpiresAt        time.Time
}

func (r *IdempotencyRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte
	Headers     map[string]string
	CreatedAt   time.Time
}
