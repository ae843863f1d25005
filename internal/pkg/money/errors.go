package money

import "booking-orchestrator/internal/pkg/errs"

var errTooPrecise = errs.Mark(errs.New("amount has sub-cent precision"), errs.ErrInvalidMoney)
