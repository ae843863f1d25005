package commands

import (
	"context"

	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=purchase.go -destination=../../../tests/mock/commands/purchase_mock.go -package=commandsmock

type PurchaseCommands interface {
	SetInvoiceURL(ctx context.Context, purchaseID uuid.UUID, invoiceURL string) error
}

type purchaseCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewPurchaseCommands(uow shared.UnitOfWork) PurchaseCommands {
	return &purchaseCommandsImpl{uow: uow}
}

// SetInvoiceURL is an operator action; the role is enforced at the route
func (uc *purchaseCommandsImpl) SetInvoiceURL(ctx context.Context, purchaseID uuid.UUID, invoiceURL string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Purchases().FindForUpdate(ctx, tx.DB(), purchaseID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPurchaseNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := p.SetInvoiceURL(invoiceURL); err != nil {
			return err
		}
		if err := tx.Purchases().UpdateInvoiceURL(ctx, tx.DB(), p); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
