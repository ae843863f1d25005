package commands

import "booking-orchestrator/internal/pkg/errs"

var (
	ErrNothingToCharge         = errs.New("no bookable cart items")
	ErrPaymentFailed           = errs.New("payment failed")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrCancellationUnsupported = errs.New("provider does not support cancellation")
	ErrCancellationFailed      = errs.New("cancellation failed")
	ErrCheckoutInProgress      = errs.New("checkout already in progress")
	ErrIdempotencyKeyReused    = errs.New("idempotency key reused with a different request")
	ErrCartItemNotFound        = errs.New("cart item not found")
	ErrServiceNotFound         = errs.New("service not found")
	ErrServiceInactive         = errs.New("service is not active")
	ErrItemUnavailable         = errs.New("item is not available")
	ErrHoldExpired             = errs.New("hold expired before booking")
	ErrPurchaseNotFound        = errs.New("purchase not found")
	ErrPurchaseNotOwned        = errs.New("purchase not owned by customer")

	// Error markers for categorization
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)
