package response

import (
	"time"

	"booking-orchestrator/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type CartItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ServiceID     uuid.UUID       `json:"serviceId"`
	Capability    string          `json:"capability"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Quantity      int             `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Start         time.Time       `json:"start"`
	End           *time.Time      `json:"end,omitempty"`
	HoldID        *string         `json:"holdId,omitempty"`
	HoldExpiresAt *time.Time      `json:"holdExpiresAt,omitempty"`
	Bookable      bool            `json:"bookable"`
	Payload       any             `json:"payload"`
}

type CartResponse struct {
	CustomerID    uuid.UUID          `json:"customerId"`
	Items         []CartItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	BookableTotal decimal.Decimal    `json:"bookableTotal"`
}

type CartItemCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromCartView(v *queries.CartView) (*CartResponse, error) {
	var out CartResponse
	if err := copier.Copy(&out, v); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []CartItemResponse{}
	}
	return &out, nil
}
