package provider

import (
	"context"
	"net/http"
	"net/url"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"
)

// Request carries the logical parameters of one provider call.
// REST reads Query for GET operations and Body otherwise; the legacy transport always sends Body.
type Request struct {
	Operation catalog.Operation
	Query     url.Values
	Body      any
}

type Transport interface {
	Protocol() catalog.Protocol
	Do(ctx context.Context, detail catalog.ProtocolDetail, req Request, out any) error
}

type listResult[T any] struct {
	Items []T `json:"items" xml:"item"`
}

const (
	maxErrorBody    = 4 << 10
	maxResponseBody = 4 << 20
)

func classifyStatus(code int, msg string) error {
	switch {
	case code == http.StatusNotImplemented:
		return errs.Mark(errs.Newf("provider answered %d: %s", code, msg), shared.ErrProtocolNotSupported)
	case code >= 500:
		return errs.Mark(errs.Newf("provider answered %d: %s", code, msg), shared.ErrProviderUnavailable)
	case code >= 400:
		return errs.Mark(errs.Newf("provider answered %d: %s", code, msg), shared.ErrProviderRejected)
	default:
		return nil
	}
}

func unavailable(err error, format string, args ...any) error {
	return errs.Mark(errs.Wrapf(err, format, args...), shared.ErrProviderUnavailable)
}
