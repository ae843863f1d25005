package commands

import (
	"context"
	"log/slog"
	"time"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/customer"
	"booking-orchestrator/internal/domain/purchase"
	"booking-orchestrator/internal/domain/reservation"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=checkout.go -destination=../../../tests/mock/commands/checkout_mock.go -package=commandsmock

type ItemStatus string

const (
	ItemBooked      ItemStatus = "booked"
	ItemCompensated ItemStatus = "compensated"
	ItemSkipped     ItemStatus = "skipped"
)

type CheckoutInput struct {
	CustomerID      uuid.UUID
	CustomerAccount int64
	Profile         customer.Profile
	// IdempotencyKey is optional; uuid.Nil disables replay protection
	IdempotencyKey uuid.UUID
}

// Compensation records which reversing transfers of an unbooked item went through.
// ProviderReversal stays false for items whose payout was never made.
type Compensation struct {
	ProviderReversal bool `json:"provider_reversal"`
	CustomerRefund   bool `json:"customer_refund"`
}

type ItemCheckoutResult struct {
	ItemID           uuid.UUID       `json:"item_id"`
	ServiceID        uuid.UUID       `json:"service_id"`
	Status           ItemStatus      `json:"status"`
	Reason           string          `json:"reason,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	ReservationID    *uuid.UUID      `json:"reservation_id,omitempty"`
	ConfirmationCode string          `json:"confirmation_code,omitempty"`
	Invoice          StepOutcome     `json:"invoice"`
	InvoiceURL       string          `json:"invoice_url,omitempty"`
	Compensation     *Compensation   `json:"compensation,omitempty"`
}

type CheckoutResult struct {
	PurchaseID     uuid.UUID            `json:"purchase_id"`
	Total          decimal.Decimal      `json:"total"`
	Success        bool                 `json:"success"`
	RefundRequired bool                 `json:"refund_required"`
	RefundAmount   decimal.Decimal      `json:"refund_amount"`
	Items          []ItemCheckoutResult `json:"items"`
	// Deferred lists items left in the cart because their hold is missing or expired
	Deferred []uuid.UUID `json:"deferred"`
	Replayed bool        `json:"-"`
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
}

// CheckoutSaga debits the cart total once and then books every held item independently,
// compensating the money legs of an item whose booking fails.
type CheckoutSaga struct {
	uow             shared.UnitOfWork
	gateways        shared.ProviderGateways
	bank            shared.Bank
	locker          shared.Locker
	splitter        reservation.SplitCalculator
	clock           clock.Clock
	logger          *slog.Logger
	platformAccount int64
	lockTTL         time.Duration
}

func NewCheckoutSaga(
	uow shared.UnitOfWork,
	gateways shared.ProviderGateways,
	bank shared.Bank,
	locker shared.Locker,
	splitter reservation.SplitCalculator,
	clk clock.Clock,
	booking config.BookingConfig,
	redis config.RedisConfig,
	logger *slog.Logger,
) *CheckoutSaga {
	return &CheckoutSaga{
		uow:             uow,
		gateways:        gateways,
		bank:            bank,
		locker:          locker,
		splitter:        splitter,
		clock:           clk,
		logger:          logger,
		platformAccount: booking.PlatformAccount,
		lockTTL:         redis.CheckoutLockTTL,
	}
}

type bookable struct {
	item *cart.Item
	svc  *catalog.Service
	gw   shared.ProviderGateway
}

func checkoutLockKey(customerID uuid.UUID) string {
	return "checkout:" + customerID.String()
}

func transferKey(scope string, ids ...uuid.UUID) func(leg string) string {
	prefix := scope
	for _, id := range ids {
		prefix += ":" + id.String()
	}
	return func(leg string) string { return prefix + ":" + leg }
}

func (s *CheckoutSaga) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	release, err := s.locker.Acquire(ctx, checkoutLockKey(in.CustomerID), s.lockTTL)
	if err != nil {
		if errs.Is(err, shared.ErrLockHeld) {
			return nil, ErrCheckoutInProgress
		}
		return nil, errs.Wrap(err, "acquire checkout lock")
	}
	defer release(context.WithoutCancel(ctx))

	claim, replay, err := s.claimIdempotencyKey(ctx, in)
	if err != nil {
		return nil, err
	}
	if replay != nil {
		return replay, nil
	}

	result, err := s.run(ctx, in, claim)
	if err != nil {
		s.releaseClaim(ctx, claim)
		return nil, err
	}
	return result, nil
}

func (s *CheckoutSaga) run(ctx context.Context, in CheckoutInput, claim idempotencyClaim) (*CheckoutResult, error) {
	now := s.clock.Now()
	log := s.logger.With(slog.String("customer_id", in.CustomerID.String()))

	items, err := s.uow.CommandReads().CartItems(ctx, in.CustomerID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	result := &CheckoutResult{Items: []ItemCheckoutResult{}, Deferred: []uuid.UUID{}}
	var ready []bookable
	for _, item := range items {
		if !item.ConsumableAt(now) {
			result.Deferred = append(result.Deferred, item.ID())
			continue
		}
		if hold, _ := item.Hold(); !hold.HasExpiry() {
			log.WarnContext(ctx, "consuming a hold without expiry", slog.String("item_id", item.ID().String()))
		}
		b, err := s.resolve(ctx, item)
		if err != nil {
			if errs.Is(err, ErrDatabaseOperationFailed) {
				return nil, err
			}
			log.WarnContext(ctx, "item left in cart",
				slog.String("item_id", item.ID().String()),
				slog.String("reason", err.Error()),
			)
			result.Deferred = append(result.Deferred, item.ID())
			continue
		}
		ready = append(ready, b)
	}
	if len(ready) == 0 {
		return nil, ErrNothingToCharge
	}

	charged := make([]*cart.Item, 0, len(ready))
	for _, b := range ready {
		charged = append(charged, b.item)
	}
	p, err := purchase.NewPurchase(in.CustomerID, in.CustomerAccount, cart.Total(charged), now)
	if err != nil {
		return nil, err
	}
	key := transferKey("checkout", p.ID())
	log = log.With(slog.String("purchase_id", p.ID().String()))

	if !s.bank.Transfer(ctx, shared.Transfer{
		From:           in.CustomerAccount,
		To:             s.platformAccount,
		Amount:         p.Total(),
		IdempotencyKey: key("debit"),
		Reference:      p.ID().String(),
	}) {
		log.WarnContext(ctx, "cart debit failed", slog.String("total", p.Total().StringFixed(2)))
		return nil, ErrPaymentFailed
	}
	// money has moved; the remaining steps run to completion even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	if err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Purchases().Create(ctx, tx.DB(), p)
	}); err != nil {
		log.ErrorContext(ctx, "purchase insert failed after debit, refunding", slog.String("error", err.Error()))
		if !s.bank.Transfer(ctx, shared.Transfer{
			From:           s.platformAccount,
			To:             in.CustomerAccount,
			Amount:         p.Total(),
			IdempotencyKey: key("debit-refund"),
			Reference:      p.ID().String(),
		}) {
			log.ErrorContext(ctx, "debit refund failed, manual refund required", slog.String("total", p.Total().StringFixed(2)))
		}
		return nil, errs.Mark(errs.Wrap(err, "create purchase"), ErrDatabaseOperationFailed)
	}

	result.PurchaseID = p.ID()
	result.Total = p.Total()
	result.RefundAmount = decimal.Zero

	reservations := []uuid.UUID{}
	for _, b := range ready {
		// earlier items may have outlasted this hold
		if !b.item.ConsumableAt(s.clock.Now()) {
			log.WarnContext(ctx, "hold expired during checkout, refunding item", slog.String("item_id", b.item.ID().String()))
			result.Items = append(result.Items, s.skip(ctx, in, p, b, ErrHoldExpired.Error(), false))
			result.Deferred = append(result.Deferred, b.item.ID())
			continue
		}
		res := s.bookItem(ctx, in, p, b)
		if res.Status == ItemBooked {
			reservations = append(reservations, *res.ReservationID)
		}
		result.Items = append(result.Items, res)
	}

	result.Success = len(reservations) > 0
	result.RefundAmount = outstanding(p.Total(), result.Items)
	result.RefundRequired = result.RefundAmount.IsPositive()
	if result.RefundRequired {
		log.WarnContext(ctx, "debited amount neither booked nor refunded, refund required",
			slog.String("total", p.Total().StringFixed(2)),
			slog.String("outstanding", result.RefundAmount.StringFixed(2)),
		)
	}

	if err := s.settle(ctx, in, p, reservations, result, claim); err != nil {
		// bookings are already committed; the result stands
		log.ErrorContext(ctx, "failed to record settlement", slog.String("error", err.Error()))
	}
	return result, nil
}

func (s *CheckoutSaga) resolve(ctx context.Context, item *cart.Item) (bookable, error) {
	svc, err := s.uow.CommandReads().ServiceByID(ctx, item.ServiceID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return bookable{}, ErrServiceNotFound
		}
		return bookable{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !svc.IsActive() {
		return bookable{}, ErrServiceInactive
	}
	gw, err := s.gateways.For(svc.Capability())
	if err != nil {
		return bookable{}, err
	}
	return bookable{item: item, svc: svc, gw: gw}, nil
}

func (s *CheckoutSaga) bookItem(ctx context.Context, in CheckoutInput, p *purchase.Purchase, b bookable) ItemCheckoutResult {
	item := b.item
	res := ItemCheckoutResult{
		ItemID:    item.ID(),
		ServiceID: item.ServiceID(),
		Amount:    item.Amount(),
	}
	key := transferKey("checkout", p.ID(), item.ID())
	log := s.logger.With(
		slog.String("purchase_id", p.ID().String()),
		slog.String("item_id", item.ID().String()),
		slog.String("service_id", b.svc.ID().String()),
	)

	split, err := s.splitter.Split(item.Amount())
	if err != nil {
		log.ErrorContext(ctx, "commission split failed, refunding item", slog.String("error", err.Error()))
		return s.skip(ctx, in, p, b, err.Error(), true)
	}

	if !s.bank.Transfer(ctx, shared.Transfer{
		From:           s.platformAccount,
		To:             b.svc.SettlementAccount(),
		Amount:         split.Business(),
		IdempotencyKey: key("payout"),
		Reference:      item.ID().String(),
	}) {
		log.WarnContext(ctx, "provider payout failed, refunding item", slog.String("share", split.Business().StringFixed(2)))
		return s.skip(ctx, in, p, b, ErrPaymentFailed.Error(), true)
	}

	hold, _ := item.Hold()
	booking, err := b.gw.CreateReservation(ctx, b.svc, shared.BookingRequestFor(item, hold.ID, in.Profile))
	if err != nil {
		log.WarnContext(ctx, "provider booking failed, compensating", slog.String("error", err.Error()))
		return s.compensate(ctx, in, b, split, key, res, "booking failed: "+err.Error())
	}

	res.Invoice, res.InvoiceURL = s.invoice(ctx, b, booking, split, in.Profile)

	r, err := reservation.NewReservation(reservation.NewParams{
		ServiceID:             b.svc.ID(),
		CustomerID:            in.CustomerID,
		Capability:            b.svc.Capability(),
		ProductID:             item.ProductID(),
		ProductName:           item.ProductName(),
		ConfirmationCode:      booking.ConfirmationCode,
		ProviderReservationID: booking.ProviderReservationID,
		InvoiceURL:            res.InvoiceURL,
		Split:                 split,
		CustomerAccount:       in.CustomerAccount,
	}, s.clock.Now())
	if err != nil {
		log.ErrorContext(ctx, "provider booking unusable, compensating",
			slog.String("confirmation_code", booking.ConfirmationCode),
			slog.String("error", err.Error()),
		)
		return s.compensate(ctx, in, b, split, key, res, err.Error())
	}

	evt, err := shared.NewOutboxEvent(ctx, r.ID(), shared.EventReservationConfirmed, shared.ReservationConfirmedEvent{
		ReservationID:    r.ID(),
		PurchaseID:       p.ID(),
		CustomerID:       in.CustomerID,
		ServiceID:        b.svc.ID(),
		Capability:       b.svc.Capability().String(),
		ConfirmationCode: r.ConfirmationCode(),
		Amount:           r.Amount().StringFixed(2),
		OccurredAt:       r.CreatedAt(),
	}, r.CreatedAt())
	if err == nil {
		err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if err := tx.Reservations().Create(ctx, tx.DB(), r); err != nil {
				return err
			}
			if err := tx.Purchases().Link(ctx, tx.DB(), purchase.Link{PurchaseID: p.ID(), ReservationID: r.ID()}); err != nil {
				return err
			}
			if err := tx.Cart().Remove(ctx, tx.DB(), in.CustomerID, item.ID()); err != nil && !infra.IsKind(err, infra.KindNotFound) {
				return err
			}
			return tx.Outbox().Enqueue(ctx, tx.DB(), evt)
		})
	}
	if err != nil {
		log.ErrorContext(ctx, "failed to persist reservation, compensating; provider booking needs manual cancellation",
			slog.String("confirmation_code", booking.ConfirmationCode),
			slog.String("error", err.Error()),
		)
		return s.compensate(ctx, in, b, split, key, res, "persist reservation: "+err.Error())
	}

	id := r.ID()
	res.Status = ItemBooked
	res.ReservationID = &id
	res.ConfirmationCode = r.ConfirmationCode()
	log.InfoContext(ctx, "item booked",
		slog.String("reservation_id", id.String()),
		slog.String("confirmation_code", r.ConfirmationCode()),
	)
	return res
}

func (s *CheckoutSaga) invoice(
	ctx context.Context,
	b bookable,
	booking shared.BookingResult,
	split reservation.Split,
	profile customer.Profile,
) (StepOutcome, string) {
	ref := booking.ProviderReservationID
	if ref == "" {
		ref = booking.ConfirmationCode
	}
	url, err := b.gw.GenerateInvoice(ctx, b.svc, shared.InvoiceRequest{
		ProviderReservationID: ref,
		Subtotal:              split.Amount(),
		Tax:                   decimal.Zero,
		Total:                 split.Amount(),
		Billing:               profile,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "invoice generation failed",
			slog.String("service_id", b.svc.ID().String()),
			slog.String("confirmation_code", booking.ConfirmationCode),
			slog.String("error", err.Error()),
		)
		return StepFailedNonFatal, ""
	}
	return StepSuccess, url
}

// compensate reverses the payout, refunds the item amount and drops the item from the cart
func (s *CheckoutSaga) compensate(
	ctx context.Context,
	in CheckoutInput,
	b bookable,
	split reservation.Split,
	key func(string) string,
	res ItemCheckoutResult,
	reason string,
) ItemCheckoutResult {
	ctx = context.WithoutCancel(ctx)
	log := s.logger.With(slog.String("item_id", b.item.ID().String()))
	comp := &Compensation{}

	comp.ProviderReversal = s.bank.Transfer(ctx, shared.Transfer{
		From:           b.svc.SettlementAccount(),
		To:             s.platformAccount,
		Amount:         split.Business(),
		IdempotencyKey: key("reverse"),
		Reference:      b.item.ID().String(),
	})
	if !comp.ProviderReversal {
		log.ErrorContext(ctx, "payout reversal failed", slog.String("share", split.Business().StringFixed(2)))
	}

	comp.CustomerRefund = s.bank.Transfer(ctx, shared.Transfer{
		From:           s.platformAccount,
		To:             in.CustomerAccount,
		Amount:         split.Amount(),
		IdempotencyKey: key("refund"),
		Reference:      b.item.ID().String(),
	})
	if !comp.CustomerRefund {
		log.ErrorContext(ctx, "customer refund failed", slog.String("amount", split.Amount().StringFixed(2)))
	}

	if err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Cart().Remove(ctx, tx.DB(), in.CustomerID, b.item.ID())
	}); err != nil && !infra.IsKind(err, infra.KindNotFound) {
		log.ErrorContext(ctx, "failed to remove compensated item", slog.String("error", err.Error()))
	}

	res.Status = ItemCompensated
	res.Reason = reason
	res.Compensation = comp
	return res
}

// skip refunds an item that was charged but never paid out. With remove unset the item
// stays in the cart so the customer can hold it again.
func (s *CheckoutSaga) skip(
	ctx context.Context,
	in CheckoutInput,
	p *purchase.Purchase,
	b bookable,
	reason string,
	remove bool,
) ItemCheckoutResult {
	ctx = context.WithoutCancel(ctx)
	item := b.item
	log := s.logger.With(slog.String("item_id", item.ID().String()))

	refunded := s.bank.Transfer(ctx, shared.Transfer{
		From:           s.platformAccount,
		To:             in.CustomerAccount,
		Amount:         item.Amount(),
		IdempotencyKey: transferKey("checkout", p.ID(), item.ID())("refund"),
		Reference:      item.ID().String(),
	})
	if !refunded {
		log.ErrorContext(ctx, "customer refund failed", slog.String("amount", item.Amount().StringFixed(2)))
	}

	if remove {
		if err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Cart().Remove(ctx, tx.DB(), in.CustomerID, item.ID())
		}); err != nil && !infra.IsKind(err, infra.KindNotFound) {
			log.ErrorContext(ctx, "failed to remove skipped item", slog.String("error", err.Error()))
		}
	}

	return ItemCheckoutResult{
		ItemID:       item.ID(),
		ServiceID:    item.ServiceID(),
		Status:       ItemSkipped,
		Reason:       reason,
		Amount:       item.Amount(),
		Compensation: &Compensation{CustomerRefund: refunded},
	}
}

// outstanding is the part of the debit that was neither booked nor refunded
func outstanding(total decimal.Decimal, items []ItemCheckoutResult) decimal.Decimal {
	left := total
	for _, it := range items {
		if it.Status == ItemBooked || (it.Compensation != nil && it.Compensation.CustomerRefund) {
			left = left.Sub(it.Amount)
		}
	}
	return left
}

func (s *CheckoutSaga) settle(
	ctx context.Context,
	in CheckoutInput,
	p *purchase.Purchase,
	reservations []uuid.UUID,
	result *CheckoutResult,
	claim idempotencyClaim,
) error {
	now := s.clock.Now()
	evt, err := shared.NewOutboxEvent(ctx, p.ID(), shared.EventPurchaseSettled, shared.PurchaseSettledEvent{
		PurchaseID:     p.ID(),
		CustomerID:     in.CustomerID,
		Total:          p.Total().StringFixed(2),
		Reservations:   reservations,
		RefundRequired: result.RefundRequired,
		OccurredAt:     now,
	}, now)
	if err != nil {
		return err
	}
	return s.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Outbox().Enqueue(ctx, tx.DB(), evt); err != nil {
			return err
		}
		return completeClaim(ctx, tx, claim, result)
	})
}
