package commands

import (
	"context"
	"time"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/commands/cart_mock.go -package=commandsmock

type AddItemInput struct {
	CustomerID  uuid.UUID
	ServiceID   uuid.UUID
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Currency    string
	Start       time.Time
	End         *time.Time
	Payload     cart.Payload
	// Verify asks the provider for availability before the item is stored
	Verify bool
}

type CartCommands interface {
	AddItem(ctx context.Context, in AddItemInput) (uuid.UUID, error)
	RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error
}

type cartCommandsImpl struct {
	uow      shared.UnitOfWork
	gateways shared.ProviderGateways
	clock    clock.Clock
}

func NewCartCommands(uow shared.UnitOfWork, gateways shared.ProviderGateways, clk clock.Clock) CartCommands {
	return &cartCommandsImpl{
		uow:      uow,
		gateways: gateways,
		clock:    clk,
	}
}

func (uc *cartCommandsImpl) AddItem(ctx context.Context, in AddItemInput) (uuid.UUID, error) {
	svc, err := uc.uow.CommandReads().ServiceByID(ctx, in.ServiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrServiceNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !svc.IsActive() {
		return uuid.Nil, ErrServiceInactive
	}
	if in.Payload != nil && in.Payload.Capability() != svc.Capability() {
		return uuid.Nil, errs.Mark(
			errs.Newf("%s item cannot be booked at a %s service", in.Payload.Capability(), svc.Capability()),
			cart.ErrInvalidItem,
		)
	}

	item, err := cart.NewItem(cart.NewItemParams{
		CustomerID:  in.CustomerID,
		ServiceID:   in.ServiceID,
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		UnitPrice:   in.UnitPrice,
		Currency:    in.Currency,
		Start:       in.Start,
		End:         in.End,
		Payload:     in.Payload,
	}, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	if in.Verify {
		gw, err := uc.gateways.For(svc.Capability())
		if err != nil {
			return uuid.Nil, err
		}
		available, err := gw.CheckAvailability(ctx, svc, shared.AvailabilityQueryFor(item))
		if err != nil {
			return uuid.Nil, err
		}
		if !available {
			return uuid.Nil, ErrItemUnavailable
		}
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Cart().Add(ctx, tx.DB(), item)
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return item.ID(), nil
}

func (uc *cartCommandsImpl) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Cart().Remove(ctx, tx.DB(), customerID, itemID)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCartItemNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
