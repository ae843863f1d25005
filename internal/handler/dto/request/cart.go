package request

import (
	"encoding/json"
	"strings"
	"time"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest carries the capability-specific part as raw JSON; ToInput decodes it
type AddCartItemRequest struct {
	ServiceID   uuid.UUID       `json:"serviceId" binding:"required"`
	Capability  string          `json:"capability" binding:"required,oneof=flight hotel vehicle table package"`
	ProductID   string          `json:"productId" binding:"required,max=200"`
	ProductName string          `json:"productName" binding:"max=200"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Currency    string          `json:"currency" binding:"omitempty,len=3"`
	Start       time.Time       `json:"start" binding:"required"`
	End         *time.Time      `json:"end,omitempty"`
	Payload     json.RawMessage `json:"payload" binding:"required"`
	Verify      bool            `json:"verify"`
}

func (r AddCartItemRequest) ToInput(customerID uuid.UUID) (commands.AddItemInput, error) {
	capability, err := catalog.NewCapability(r.Capability)
	if err != nil {
		return commands.AddItemInput{}, err
	}
	payload, err := cart.UnmarshalPayload(capability, r.Payload)
	if err != nil {
		return commands.AddItemInput{}, err
	}
	if !r.UnitPrice.IsPositive() {
		return commands.AddItemInput{}, errs.Mark(errs.Newf("unit price %s", r.UnitPrice), errs.ErrInvalidMoney)
	}

	return commands.AddItemInput{
		CustomerID:  customerID,
		ServiceID:   r.ServiceID,
		ProductID:   strings.TrimSpace(r.ProductID),
		ProductName: strings.TrimSpace(r.ProductName),
		UnitPrice:   r.UnitPrice,
		Currency:    strings.ToUpper(r.Currency),
		Start:       r.Start,
		End:         r.End,
		Payload:     payload,
		Verify:      r.Verify,
	}, nil
}
