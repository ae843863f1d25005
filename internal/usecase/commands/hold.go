package commands

import (
	"context"
	"log/slog"
	"time"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/customer"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=hold.go -destination=../../../tests/mock/commands/hold_mock.go -package=commandsmock

const defaultHoldDuration = 300 * time.Second

type HoldStatus string

const (
	HoldPlaced      HoldStatus = "placed"
	ItemUnavailable HoldStatus = "unavailable"
	HoldFailed      HoldStatus = "failed"
)

type ItemHoldResult struct {
	ItemID       uuid.UUID
	ServiceID    uuid.UUID
	Status       HoldStatus
	Reason       string
	HoldID       string
	Expiry       *time.Time
	Registration StepOutcome
}

type HoldBatchResult struct {
	Items   []ItemHoldResult
	Placed  int
	Removed int
}

type holdOptions struct {
	duration time.Duration
	profile  *customer.Profile
}

type HoldOption func(*holdOptions)

// WithHoldDuration overrides the configured hold length; d <= 0 falls back to 300s
func WithHoldDuration(d time.Duration) HoldOption {
	return func(o *holdOptions) { o.duration = d }
}

// WithCustomerProfile registers the customer at each provider before its first hold
func WithCustomerProfile(p customer.Profile) HoldOption {
	return func(o *holdOptions) {
		if !p.IsZero() {
			o.profile = &p
		}
	}
}

type HoldCommands interface {
	PlaceHolds(ctx context.Context, customerID uuid.UUID, opts ...HoldOption) (*HoldBatchResult, error)
}

// HoldManager places provider holds on every cart item that lacks one, in cart order.
// A provider failure or a deleted service drops that item and moves on to the next;
// a store failure aborts the batch and leaves the cart as it is.
type HoldManager struct {
	uow             shared.UnitOfWork
	gateways        shared.ProviderGateways
	clock           clock.Clock
	logger          *slog.Logger
	defaultDuration time.Duration
}

func NewHoldManager(uow shared.UnitOfWork, gateways shared.ProviderGateways, clk clock.Clock, cfg config.BookingConfig, logger *slog.Logger) *HoldManager {
	return &HoldManager{
		uow:             uow,
		gateways:        gateways,
		clock:           clk,
		logger:          logger,
		defaultDuration: cfg.HoldDuration(),
	}
}

func (m *HoldManager) PlaceHolds(ctx context.Context, customerID uuid.UUID, opts ...HoldOption) (*HoldBatchResult, error) {
	o := holdOptions{duration: m.defaultDuration}
	for _, opt := range opts {
		opt(&o)
	}
	if o.duration <= 0 {
		o.duration = defaultHoldDuration
	}

	items, err := m.uow.CommandReads().CartItems(ctx, customerID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	result := &HoldBatchResult{Items: []ItemHoldResult{}}
	services := make(map[uuid.UUID]*catalog.Service)
	registered := make(map[uuid.UUID]StepOutcome)

	for _, item := range items {
		if item.HasHold() {
			continue
		}

		res, err := m.placeOne(ctx, item, o, services, registered)
		if err != nil {
			return nil, err
		}
		if res.Status != HoldPlaced {
			if err := m.removeItem(ctx, customerID, item.ID()); err != nil {
				return nil, err
			}
			result.Removed++
		} else {
			result.Placed++
		}
		result.Items = append(result.Items, res)
	}
	return result, nil
}

func (m *HoldManager) placeOne(
	ctx context.Context,
	item *cart.Item,
	o holdOptions,
	services map[uuid.UUID]*catalog.Service,
	registered map[uuid.UUID]StepOutcome,
) (ItemHoldResult, error) {
	res := ItemHoldResult{ItemID: item.ID(), ServiceID: item.ServiceID(), Status: HoldFailed}
	log := m.logger.With(
		slog.String("item_id", item.ID().String()),
		slog.String("service_id", item.ServiceID().String()),
	)

	svc, err := m.service(ctx, item.ServiceID(), services)
	if err != nil {
		if !errs.Is(err, ErrServiceNotFound) {
			return res, err
		}
		res.Reason = err.Error()
		log.WarnContext(ctx, "hold skipped: service no longer exists")
		return res, nil
	}
	if !svc.IsActive() {
		res.Reason = ErrServiceInactive.Error()
		return res, nil
	}
	gw, err := m.gateways.For(svc.Capability())
	if err != nil {
		res.Reason = err.Error()
		return res, nil
	}

	res.Registration = m.registerOnce(ctx, gw, svc, o.profile, registered)

	available, err := gw.CheckAvailability(ctx, svc, shared.AvailabilityQueryFor(item))
	if err != nil {
		res.Reason = err.Error()
		log.WarnContext(ctx, "availability check failed", slog.String("error", err.Error()))
		return res, nil
	}
	if !available {
		res.Status = ItemUnavailable
		res.Reason = "not available"
		return res, nil
	}

	held, err := gw.CreateHold(ctx, svc, shared.HoldRequestFor(item, o.duration))
	if err != nil {
		res.Reason = err.Error()
		log.WarnContext(ctx, "hold creation failed", slog.String("error", err.Error()))
		return res, nil
	}

	hold := cart.Hold{ID: held.HoldID, Expiry: held.Expiry}
	if err := item.AttachHold(hold); err != nil {
		res.Reason = "provider returned no hold id"
		return res, nil
	}
	if err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Cart().AttachHold(ctx, tx.DB(), item.ID(), hold)
	}); err != nil {
		log.ErrorContext(ctx, "failed to store hold", slog.String("hold_id", hold.ID), slog.String("error", err.Error()))
		return res, errs.Mark(errs.Wrap(err, "store hold"), ErrDatabaseOperationFailed)
	}
	if hold.Expiry == nil {
		log.WarnContext(ctx, "provider returned a hold without expiry; it is treated as non-expiring",
			slog.String("hold_id", hold.ID))
	}

	res.Status = HoldPlaced
	res.HoldID = hold.ID
	res.Expiry = hold.Expiry
	return res, nil
}

func (m *HoldManager) registerOnce(
	ctx context.Context,
	gw shared.ProviderGateway,
	svc *catalog.Service,
	profile *customer.Profile,
	registered map[uuid.UUID]StepOutcome,
) StepOutcome {
	if profile == nil {
		return StepSkipped
	}
	if outcome, ok := registered[svc.ID()]; ok {
		return outcome
	}

	outcome := StepSuccess
	if _, err := gw.RegisterExternalCustomer(ctx, svc, *profile); err != nil {
		outcome = StepFailedNonFatal
		m.logger.WarnContext(ctx, "customer registration at provider failed",
			slog.String("service_id", svc.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	registered[svc.ID()] = outcome
	return outcome
}

func (m *HoldManager) service(ctx context.Context, id uuid.UUID, cache map[uuid.UUID]*catalog.Service) (*catalog.Service, error) {
	if svc, ok := cache[id]; ok {
		return svc, nil
	}
	svc, err := m.uow.CommandReads().ServiceByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	cache[id] = svc
	return svc, nil
}

func (m *HoldManager) removeItem(ctx context.Context, customerID, itemID uuid.UUID) error {
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Cart().Remove(ctx, tx.DB(), customerID, itemID)
	})
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
