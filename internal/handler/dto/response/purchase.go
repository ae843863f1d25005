package response

import (
	"time"

	"booking-orchestrator/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type PurchaseResponse struct {
	ID           uuid.UUID                     `json:"id"`
	CustomerID   uuid.UUID                     `json:"customerId"`
	Total        decimal.Decimal               `json:"total"`
	InvoiceURL   *string                       `json:"invoiceUrl,omitempty"`
	CreatedAt    time.Time                     `json:"createdAt"`
	Reservations []ReservationListItemResponse `json:"reservations"`
}

func FromPurchaseView(v *queries.PurchaseView) (*PurchaseResponse, error) {
	var out PurchaseResponse
	if err := copier.Copy(&out, v); err != nil {
		return nil, err
	}
	if out.Reservations == nil {
		out.Reservations = []ReservationListItemResponse{}
	}
	return &out, nil
}
