package cart

import "booking-orchestrator/internal/pkg/errs"

var (
	ErrInvalidItem  = errs.New("invalid cart item")
	ErrHoldRequired = errs.New("hold id is required")
)
