package provider

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "booking-orchestrator/provider"

// Outcome tells which protocol finally served a call
type Outcome struct {
	Protocol catalog.Protocol
	Forced   bool
}

// Invoker runs one logical provider operation against the selected protocol detail and
// retries once on the alternate detail when the failure allows it.
type Invoker struct {
	transports map[catalog.Protocol]Transport
	preferred  catalog.Protocol
	timeout    time.Duration
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewInvoker(cfg config.ProviderConfig, rest *RESTTransport, legacy *LegacyTransport, logger *slog.Logger) (*Invoker, error) {
	preferred, err := catalog.NewProtocol(cfg.PreferredProtocol)
	if err != nil {
		return nil, errs.Wrap(err, "PREFERRED_PROTOCOL")
	}
	return NewInvokerWithTransports(preferred, cfg.CallTimeout, logger, rest, legacy), nil
}

func NewInvokerWithTransports(preferred catalog.Protocol, timeout time.Duration, logger *slog.Logger, transports ...Transport) *Invoker {
	byProtocol := make(map[catalog.Protocol]Transport, len(transports))
	for _, t := range transports {
		byProtocol[t.Protocol()] = t
	}
	return &Invoker{
		transports: byProtocol,
		preferred:  preferred,
		timeout:    timeout,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

func (i *Invoker) Preferred() catalog.Protocol {
	return i.preferred
}

// Invoke decodes the provider answer into out. out is reset before the fallback attempt.
func (i *Invoker) Invoke(ctx context.Context, svc *catalog.Service, req Request, out any) (Outcome, error) {
	chosen, fallback, err := catalog.SelectEndpoint(svc, req.Operation, i.preferred)
	if err != nil {
		return Outcome{}, err
	}

	forced := catalog.Forced(chosen, i.preferred)
	err = i.attempt(ctx, svc, *chosen, req, out, forced)
	if err == nil {
		return Outcome{Protocol: chosen.Protocol(), Forced: forced}, nil
	}
	if fallback == nil || !i.shouldFallback(err, chosen) {
		return Outcome{Protocol: chosen.Protocol(), Forced: forced}, err
	}

	i.logger.WarnContext(ctx, "provider call failed, retrying with alternate protocol",
		slog.String("service_id", svc.ID().String()),
		slog.String("operation", req.Operation.String()),
		slog.String("from", chosen.Protocol().String()),
		slog.String("to", fallback.Protocol().String()),
		slog.String("error", err.Error()),
	)

	resetOut(out)
	if err := i.attempt(ctx, svc, *fallback, req, out, true); err != nil {
		return Outcome{Protocol: fallback.Protocol(), Forced: true}, err
	}
	return Outcome{Protocol: fallback.Protocol(), Forced: true}, nil
}

// InvokeOn calls one fixed detail with no protocol selection and no fallback
func (i *Invoker) InvokeOn(ctx context.Context, svc *catalog.Service, detail catalog.ProtocolDetail, req Request, out any) (Outcome, error) {
	forced := catalog.Forced(&detail, i.preferred)
	return Outcome{Protocol: detail.Protocol(), Forced: forced}, i.attempt(ctx, svc, detail, req, out, forced)
}

// shouldFallback: unsupported always retries; unavailability retries only on a REST-first path
func (i *Invoker) shouldFallback(err error, chosen *catalog.ProtocolDetail) bool {
	if errs.Is(err, shared.ErrProtocolNotSupported) {
		return true
	}
	return errs.Is(err, shared.ErrProviderUnavailable) &&
		chosen.Protocol() == catalog.ProtocolREST &&
		i.preferred == catalog.ProtocolREST
}

func (i *Invoker) attempt(ctx context.Context, svc *catalog.Service, detail catalog.ProtocolDetail, req Request, out any, forced bool) error {
	transport, ok := i.transports[detail.Protocol()]
	if !ok {
		return errs.Mark(errs.Newf("no transport for %s", detail.Protocol()), shared.ErrProtocolNotSupported)
	}

	ctx, span := i.tracer.Start(ctx, "provider."+req.Operation.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("service.id", svc.ID().String()),
			attribute.String("service.capability", svc.Capability().String()),
			attribute.String("provider.protocol", detail.Protocol().String()),
			attribute.Bool("provider.forced", forced),
		),
	)
	defer span.End()

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	if err := transport.Do(ctx, detail, req, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func resetOut(out any) {
	if out == nil {
		return
	}
	v := reflect.ValueOf(out)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
}
