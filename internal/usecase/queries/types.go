package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)

type ServiceView struct {
	ID          uuid.UUID `json:"id"`
	Capability  string    `json:"capability"`
	Name        string    `json:"name"`
	Protocols   []string  `json:"protocols"`
	Searchable  bool      `json:"searchable"`
	Cancellable bool      `json:"cancellable"`
}

type ReservationView struct {
	ID                    uuid.UUID       `json:"id"`
	ServiceID             uuid.UUID       `json:"service_id"`
	ServiceName           string          `json:"service_name"`
	CustomerID            uuid.UUID       `json:"customer_id"`
	Capability            string          `json:"capability"`
	ProductID             string          `json:"product_id"`
	ProductName           string          `json:"product_name"`
	ConfirmationCode      string          `json:"confirmation_code"`
	ProviderReservationID string          `json:"provider_reservation_id"`
	InvoiceURL            *string         `json:"invoice_url,omitempty"`
	Active                bool            `json:"active"`
	AmountPaidToBusiness  decimal.Decimal `json:"amount_paid_to_business"`
	PlatformCommission    decimal.Decimal `json:"platform_commission"`
	Amount                decimal.Decimal `json:"amount"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

type ReservationListItem struct {
	ID               uuid.UUID       `json:"id"`
	ServiceID        uuid.UUID       `json:"service_id"`
	ServiceName      string          `json:"service_name"`
	Capability       string          `json:"capability"`
	ProductName      string          `json:"product_name"`
	ConfirmationCode string          `json:"confirmation_code"`
	Active           bool            `json:"active"`
	Amount           decimal.Decimal `json:"amount"`
	CreatedAt        time.Time       `json:"created_at"`
}

type ReservationStatusView struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"-"`
	Cancelled  bool      `json:"cancelled"`
}

type PurchaseView struct {
	ID           uuid.UUID              `json:"id"`
	CustomerID   uuid.UUID              `json:"customer_id"`
	Total        decimal.Decimal        `json:"total"`
	InvoiceURL   *string                `json:"invoice_url,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	Reservations []*ReservationListItem `json:"reservations"`
}

type CartItemView struct {
	ID            uuid.UUID       `json:"id"`
	ServiceID     uuid.UUID       `json:"service_id"`
	Capability    string          `json:"capability"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Start         time.Time       `json:"start"`
	End           *time.Time      `json:"end,omitempty"`
	HoldID        *string         `json:"hold_id,omitempty"`
	HoldExpiresAt *time.Time      `json:"hold_expires_at,omitempty"`
	Bookable      bool            `json:"bookable"`
	Payload       any             `json:"payload"`
}

type CartView struct {
	CustomerID    uuid.UUID       `json:"customer_id"`
	Items         []*CartItemView `json:"items"`
	Total         decimal.Decimal `json:"total"`
	BookableTotal decimal.Decimal `json:"bookable_total"`
}

type ProductView struct {
	ServiceID   uuid.UUID         `json:"service_id"`
	ServiceName string            `json:"service_name"`
	Capability  string            `json:"capability"`
	ProductID   string            `json:"product_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	StartsAt    *time.Time        `json:"starts_at,omitempty"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
	Currency    string            `json:"currency"`
	Available   int               `json:"available"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

type SearchMeta struct {
	ProvidersQueried   int      `json:"providers_queried"`
	ProvidersSucceeded int      `json:"providers_succeeded"`
	ProvidersFailed    int      `json:"providers_failed"`
	FailedProviders    []string `json:"failed_providers"`
	CacheHit           bool     `json:"cache_hit"`
}

type SearchResult struct {
	Capability string        `json:"capability"`
	Products   []ProductView `json:"products"`
	Meta       SearchMeta    `json:"meta"`
}
