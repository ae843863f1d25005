package commands

import (
	"context"
	"log/slog"

	"booking-orchestrator/internal/domain/reservation"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=cancellation.go -destination=../../../tests/mock/commands/cancellation_mock.go -package=commandsmock

type CancelStatus string

const (
	StatusCancelled        CancelStatus = "cancelled"
	StatusAlreadyCancelled CancelStatus = "already_cancelled"
)

type CancelResult struct {
	ReservationID uuid.UUID
	Status        CancelStatus
	Provider      StepOutcome
	Refunded      decimal.Decimal
}

type CancellationCommands interface {
	Cancel(ctx context.Context, reservationID, customerID uuid.UUID) (*CancelResult, error)
}

// CancellationWorkflow reverses the money legs of a reservation under a serializable
// transaction. The row stays active unless both transfers succeed.
type CancellationWorkflow struct {
	uow             shared.UnitOfWork
	gateways        shared.ProviderGateways
	bank            shared.Bank
	clock           clock.Clock
	logger          *slog.Logger
	platformAccount int64
}

func NewCancellationWorkflow(
	uow shared.UnitOfWork,
	gateways shared.ProviderGateways,
	bank shared.Bank,
	clk clock.Clock,
	cfg config.BookingConfig,
	logger *slog.Logger,
) *CancellationWorkflow {
	return &CancellationWorkflow{
		uow:             uow,
		gateways:        gateways,
		bank:            bank,
		clock:           clk,
		logger:          logger,
		platformAccount: cfg.PlatformAccount,
	}
}

func (w *CancellationWorkflow) Cancel(ctx context.Context, reservationID, customerID uuid.UUID) (*CancelResult, error) {
	var result *CancelResult
	log := w.logger.With(slog.String("reservation_id", reservationID.String()))
	key := transferKey("cancel", reservationID)

	err := w.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reservations().FindForUpdate(ctx, tx.DB(), reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if r.CustomerID() != customerID {
			return ErrReservationNotFound
		}
		if !r.IsActive() {
			result = &CancelResult{ReservationID: r.ID(), Status: StatusAlreadyCancelled, Refunded: decimal.Zero}
			return nil
		}

		svc, err := tx.Reads().ServiceByID(ctx, r.ServiceID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if _, ok := svc.CancellationDetail(); !ok {
			return ErrCancellationUnsupported
		}
		gw, err := w.gateways.For(svc.Capability())
		if err != nil {
			return errs.Mark(err, ErrCancellationUnsupported)
		}

		provider := StepSuccess
		if err := gw.CancelReservation(ctx, svc, r.ConfirmationCode()); err != nil {
			provider = StepFailedNonFatal
			log.WarnContext(ctx, "provider cancellation failed, reversing funds anyway",
				slog.String("confirmation_code", r.ConfirmationCode()),
				slog.String("error", err.Error()),
			)
		}

		if !w.bank.Transfer(ctx, shared.Transfer{
			From:           svc.SettlementAccount(),
			To:             w.platformAccount,
			Amount:         r.AmountPaidToBusiness(),
			IdempotencyKey: key("reverse"),
			Reference:      r.ID().String(),
		}) {
			return errs.Mark(errs.New("payout reversal refused"), ErrCancellationFailed)
		}
		if !w.bank.Transfer(ctx, shared.Transfer{
			From:           w.platformAccount,
			To:             r.CustomerAccount(),
			Amount:         r.Amount(),
			IdempotencyKey: key("refund"),
			Reference:      r.ID().String(),
		}) {
			log.ErrorContext(ctx, "customer refund refused after payout reversal",
				slog.String("reversed", r.AmountPaidToBusiness().StringFixed(2)),
			)
			return errs.Mark(errs.New("customer refund refused"), ErrCancellationFailed)
		}

		now := w.clock.Now()
		if err := r.Cancel(now); err != nil {
			return err
		}
		if err := tx.Reservations().MarkCancelled(ctx, tx.DB(), r); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := w.enqueueCancelled(ctx, tx, r, provider); err != nil {
			return err
		}

		result = &CancelResult{ReservationID: r.ID(), Status: StatusCancelled, Provider: provider, Refunded: r.Amount()}
		return nil
	})
	if err != nil {
		if errs.Is(err, ErrCancellationFailed) {
			log.WarnContext(ctx, "cancellation rolled back", slog.String("error", err.Error()))
		}
		return nil, err
	}
	return result, nil
}

func (w *CancellationWorkflow) enqueueCancelled(ctx context.Context, tx shared.Tx, r *reservation.Reservation, provider StepOutcome) error {
	evt, err := shared.NewOutboxEvent(ctx, r.ID(), shared.EventReservationCancelled, shared.ReservationCancelledEvent{
		ReservationID: r.ID(),
		CustomerID:    r.CustomerID(),
		ServiceID:     r.ServiceID(),
		Refunded:      r.Amount().StringFixed(2),
		ProviderStep:  provider.String(),
		OccurredAt:    r.UpdatedAt(),
	}, r.UpdatedAt())
	if err != nil {
		return err
	}
	return tx.Outbox().Enqueue(ctx, tx.DB(), evt)
}
