package queries

import "booking-orchestrator/internal/pkg/errs"

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrPurchaseNotFound    = errs.New("purchase not found")
	ErrUnknownCapability   = errs.New("unknown capability")
)
