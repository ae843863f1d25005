package catalog

import "booking-orchestrator/internal/pkg/errs"

var (
	ErrInvalidCapability = errs.New("invalid capability")
	ErrInvalidProtocol   = errs.New("invalid protocol")
	ErrInvalidOperation  = errs.New("invalid operation")
	ErrInvalidService    = errs.New("invalid service")

	ErrNoProtocolDetail     = errs.New("service has no protocol detail")
	ErrProtocolNotSupported = errs.New("operation not supported by protocol")
)
