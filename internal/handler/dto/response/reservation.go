package response

import (
	"time"

	"booking-orchestrator/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type ReservationResponse struct {
	ID                    uuid.UUID       `json:"id"`
	ServiceID             uuid.UUID       `json:"serviceId"`
	ServiceName           string          `json:"serviceName"`
	CustomerID            uuid.UUID       `json:"customerId"`
	Capability            string          `json:"capability"`
	ProductID             string          `json:"productId"`
	ProductName           string          `json:"productName"`
	ConfirmationCode      string          `json:"confirmationCode"`
	ProviderReservationID string          `json:"providerReservationId,omitempty"`
	InvoiceURL            *string         `json:"invoiceUrl,omitempty"`
	Active                bool            `json:"active"`
	Amount                decimal.Decimal `json:"amount"`
	AmountPaidToBusiness  decimal.Decimal `json:"amountPaidToBusiness"`
	PlatformCommission    decimal.Decimal `json:"platformCommission"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

type ReservationListItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ServiceID        uuid.UUID       `json:"serviceId"`
	ServiceName      string          `json:"serviceName"`
	Capability       string          `json:"capability"`
	ProductName      string          `json:"productName"`
	ConfirmationCode string          `json:"confirmationCode"`
	Active           bool            `json:"active"`
	Amount           decimal.Decimal `json:"amount"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type ReservationListResponse struct {
	Items      []ReservationListItemResponse `json:"items"`
	NextCursor *string                       `json:"nextCursor,omitempty"`
}

type ReservationStatusResponse struct {
	ID        uuid.UUID `json:"id"`
	Cancelled bool      `json:"cancelled"`
}

func FromReservationView(v *queries.ReservationView) (*ReservationResponse, error) {
	var out ReservationResponse
	if err := copier.Copy(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) (*ReservationListResponse, error) {
	out := ReservationListResponse{Items: make([]ReservationListItemResponse, 0, len(items))}
	if err := copier.Copy(&out.Items, items); err != nil {
		return nil, err
	}
	if next != nil && next.After != "" {
		out.NextCursor = &next.After
	}
	return &out, nil
}

func FromReservationStatus(v *queries.ReservationStatusView) *ReservationStatusResponse {
	return &ReservationStatusResponse{ID: v.ID, Cancelled: v.Cancelled}
}
