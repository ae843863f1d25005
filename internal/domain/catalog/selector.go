package catalog

import (
	"booking-orchestrator/internal/pkg/errs"
)

// SelectEndpoint picks the detail to call first for op and the alternate to retry with.
//
// The preferred protocol wins when the service has it and it declares op supported;
// otherwise the other protocol is chosen. fallback is nil when no alternate can serve op.
func SelectEndpoint(svc *Service, op Operation, preferred Protocol) (chosen, fallback *ProtocolDetail, err error) {
	if svc == nil || len(svc.details) == 0 {
		return nil, nil, ErrNoProtocolDetail
	}

	primary, hasPrimary := svc.Detail(preferred)
	secondary, hasSecondary := svc.Detail(preferred.Other())

	if hasPrimary && primary.Supports(op) {
		chosen = &primary
		if hasSecondary && secondary.Supports(op) {
			fallback = &secondary
		}
		return chosen, fallback, nil
	}

	if hasSecondary && secondary.Supports(op) {
		return &secondary, nil, nil
	}

	return nil, nil, errs.Mark(
		errs.Newf("service %s: no protocol detail supports %s", svc.id, op),
		ErrProtocolNotSupported,
	)
}

// Forced reports whether the detail differs from the platform preference
func Forced(d *ProtocolDetail, preferred Protocol) bool {
	return d != nil && d.protocol != preferred
}
