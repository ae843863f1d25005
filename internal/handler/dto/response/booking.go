package response

import (
	"time"

	"booking-orchestrator/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemHoldResponse struct {
	ItemID       uuid.UUID  `json:"itemId"`
	ServiceID    uuid.UUID  `json:"serviceId"`
	Status       string     `json:"status"`
	Reason       string     `json:"reason,omitempty"`
	HoldID       string     `json:"holdId,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Registration string     `json:"registration"`
}

type HoldBatchResponse struct {
	Items   []ItemHoldResponse `json:"items"`
	Placed  int                `json:"placed"`
	Removed int                `json:"removed"`
}

func FromHoldBatchResult(r *commands.HoldBatchResult) *HoldBatchResponse {
	items := make([]ItemHoldResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = ItemHoldResponse{
			ItemID:       it.ItemID,
			ServiceID:    it.ServiceID,
			Status:       string(it.Status),
			Reason:       it.Reason,
			HoldID:       it.HoldID,
			ExpiresAt:    it.Expiry,
			Registration: it.Registration.String(),
		}
	}
	return &HoldBatchResponse{Items: items, Placed: r.Placed, Removed: r.Removed}
}

type CompensationResponse struct {
	ProviderReversal bool `json:"providerReversal"`
	CustomerRefund   bool `json:"customerRefund"`
}

type ItemCheckoutResponse struct {
	ItemID           uuid.UUID             `json:"itemId"`
	ServiceID        uuid.UUID             `json:"serviceId"`
	Status           string                `json:"status"`
	Reason           string                `json:"reason,omitempty"`
	Amount           decimal.Decimal       `json:"amount"`
	ReservationID    *uuid.UUID            `json:"reservationId,omitempty"`
	ConfirmationCode string                `json:"confirmationCode,omitempty"`
	Invoice          string                `json:"invoice"`
	InvoiceURL       string                `json:"invoiceUrl,omitempty"`
	Compensation     *CompensationResponse `json:"compensation,omitempty"`
}

type CheckoutResponse struct {
	PurchaseID     uuid.UUID              `json:"purchaseId"`
	Total          decimal.Decimal        `json:"total"`
	Success        bool                   `json:"success"`
	RefundRequired bool                   `json:"refundRequired"`
	RefundAmount   decimal.Decimal        `json:"refundAmount"`
	Items          []ItemCheckoutResponse `json:"items"`
	Deferred       []uuid.UUID            `json:"deferred"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	items := make([]ItemCheckoutResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = ItemCheckoutResponse{
			ItemID:           it.ItemID,
			ServiceID:        it.ServiceID,
			Status:           string(it.Status),
			Reason:           it.Reason,
			Amount:           it.Amount,
			ReservationID:    it.ReservationID,
			ConfirmationCode: it.ConfirmationCode,
			Invoice:          it.Invoice.String(),
			InvoiceURL:       it.InvoiceURL,
		}
		if it.Compensation != nil {
			items[i].Compensation = &CompensationResponse{
				ProviderReversal: it.Compensation.ProviderReversal,
				CustomerRefund:   it.Compensation.CustomerRefund,
			}
		}
	}
	deferred := r.Deferred
	if deferred == nil {
		deferred = []uuid.UUID{}
	}
	return &CheckoutResponse{
		PurchaseID:     r.PurchaseID,
		Total:          r.Total,
		Success:        r.Success,
		RefundRequired: r.RefundRequired,
		RefundAmount:   r.RefundAmount,
		Items:          items,
		Deferred:       deferred,
	}
}

type CancelResponse struct {
	ReservationID uuid.UUID       `json:"reservationId"`
	Status        string          `json:"status"`
	Provider      string          `json:"provider"`
	Refunded      decimal.Decimal `json:"refunded"`
}

func FromCancelResult(r *commands.CancelResult) *CancelResponse {
	return &CancelResponse{
		ReservationID: r.ReservationID,
		Status:        string(r.Status),
		Provider:      r.Provider.String(),
		Refunded:      r.Refunded,
	}
}
