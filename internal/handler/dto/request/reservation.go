package request

import "booking-orchestrator/internal/usecase/queries"

type ListReservationsRequest struct {
	After string `form:"after" binding:"max=200"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (r ListReservationsRequest) Cursor() *queries.Cursor {
	if r.After == "" {
		return nil
	}
	return &queries.Cursor{After: r.After}
}

type SetInvoiceURLRequest struct {
	InvoiceURL string `json:"invoiceUrl" binding:"required,url,max=2048"`
}
