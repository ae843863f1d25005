//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/customer"
	"booking-orchestrator/internal/domain/purchase"
	"booking-orchestrator/internal/domain/reservation"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/commands"
	"booking-orchestrator/internal/usecase/shared"
	"booking-orchestrator/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCheckoutSaga(t *testing.T, h *harness) *commands.CheckoutSaga {
	t.Helper()
	cfg := config.NewTestConfig()
	splitter, err := reservation.NewRateSplitCalculator(cfg.Booking.CommissionRate)
	require.NoError(t, err)
	return commands.NewCheckoutSaga(h.uow, h.gateways, h.bank, h.locker, splitter, h.clock, cfg.Booking, cfg.Redis, h.logger)
}

// expectLock grants the per-customer checkout lock and reports whether it was released
func expectLock(h *harness, customerID uuid.UUID) *bool {
	released := false
	h.locker.EXPECT().Acquire(gomock.Any(), "checkout:"+customerID.String(), time.Minute).
		Return(func(context.Context) { released = true }, nil)
	return &released
}

func heldItem(customerID, serviceID uuid.UUID, holdID string) *builder.CartItemBuilder {
	return builder.NewCartItemBuilder().
		With(func(b *builder.CartItemBuilder) {
			b.CustomerID = customerID
			b.ServiceID = serviceID
		}).
		WithHold(holdID, later(5*time.Minute))
}

func requestHash(customerID uuid.UUID, account string) string {
	sum := sha256.Sum256([]byte(customerID.String() + "|" + account))
	return hex.EncodeToString(sum[:])
}

func TestCheckoutSaga_Checkout(t *testing.T) {
	t.Run("success: two-night hotel debits 200, pays out 180 and keeps 20", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		profile := testProfile(t)
		svc := builder.NewServiceBuilder().MustBuild()
		item := heldItem(customerID, svc.ID(), "H-1").WithPrice("100").With(func(b *builder.CartItemBuilder) {
			end := b.Start.Add(48 * time.Hour)
			b.End = &end
		}).Build()
		released := expectLock(h, customerID)

		var stored *reservation.Reservation
		var link purchase.Link
		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{item}, nil)
		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)
		gomock.InOrder(
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(customerAccount, platformAccount, "200")).Return(true),
			h.purchases.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, settlementAccount, "180")).Return(true),
			h.gw.EXPECT().CreateReservation(gomock.Any(), svc, shared.BookingRequestFor(item, "H-1", profile)).
				Return(shared.BookingResult{ConfirmationCode: "CONF-1", ProviderReservationID: "PR-1"}, nil),
			h.gw.EXPECT().GenerateInvoice(gomock.Any(), svc, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *catalog.Service, req shared.InvoiceRequest) (string, error) {
					assert.Equal(t, "PR-1", req.ProviderReservationID)
					assert.True(t, req.Total.Equal(decimal.NewFromInt(200)))
					return "https://invoices.example/PR-1", nil
				}),
			h.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ db.DBTX, r *reservation.Reservation) error {
					stored = r
					return nil
				}),
			h.purchases.EXPECT().Link(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ db.DBTX, l purchase.Link) error {
					link = l
					return nil
				}),
			h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, item.ID()).Return(nil),
		)
		h.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		result, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
			Profile:         profile,
		})

		require.NoError(t, err)
		assert.True(t, *released)
		assert.True(t, result.Success)
		assert.False(t, result.RefundRequired)
		assert.True(t, result.Total.Equal(decimal.NewFromInt(200)))
		assert.True(t, result.RefundAmount.IsZero())
		assert.Empty(t, result.Deferred)
		require.Len(t, result.Items, 1)

		got := result.Items[0]
		assert.Equal(t, commands.ItemBooked, got.Status)
		assert.Equal(t, "CONF-1", got.ConfirmationCode)
		assert.Equal(t, commands.StepSuccess, got.Invoice)
		assert.Equal(t, "https://invoices.example/PR-1", got.InvoiceURL)

		require.NotNil(t, stored)
		assert.Equal(t, stored.ID(), *got.ReservationID)
		assert.True(t, stored.AmountPaidToBusiness().Equal(decimal.NewFromInt(180)))
		assert.True(t, stored.PlatformCommission().Equal(decimal.NewFromInt(20)))
		assert.Equal(t, customerAccount, stored.CustomerAccount())
		assert.Equal(t, result.PurchaseID, link.PurchaseID)
		assert.Equal(t, stored.ID(), link.ReservationID)
	})

	t.Run("success: failed flight booking reverses 135 and refunds 150", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		svc := builder.NewServiceBuilder().WithCapability(catalog.CapabilityFlight).MustBuild()
		item := heldItem(customerID, svc.ID(), "H-F").AsFlight().WithPrice("150").Build()
		expectLock(h, customerID)

		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{item}, nil)
		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)
		gomock.InOrder(
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(customerAccount, platformAccount, "150")).Return(true),
			h.purchases.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, settlementAccount, "135")).Return(true),
			h.gw.EXPECT().CreateReservation(gomock.Any(), svc, gomock.Any()).
				Return(shared.BookingResult{}, shared.ErrProviderRejected),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(settlementAccount, platformAccount, "135")).Return(true),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, customerAccount, "150")).Return(true),
			h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, item.ID()).Return(nil),
		)
		h.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		result, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.False(t, result.RefundRequired, "the per-item refund already returned the debit")
		assert.True(t, result.RefundAmount.IsZero())
		require.Len(t, result.Items, 1)

		got := result.Items[0]
		assert.Equal(t, commands.ItemCompensated, got.Status)
		assert.Nil(t, got.ReservationID)
		require.NotNil(t, got.Compensation)
		assert.True(t, got.Compensation.ProviderReversal)
		assert.True(t, got.Compensation.CustomerRefund)
		assert.Contains(t, got.Reason, "booking failed")
	})

	t.Run("success: one failure does not undo the other bookings", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		key := uuid.New()
		svc := builder.NewServiceBuilder().MustBuild()
		booked := heldItem(customerID, svc.ID(), "H-A").Build()
		failed := heldItem(customerID, svc.ID(), "H-B").AsTable().WithPrice("50").Build()
		expectLock(h, customerID)

		h.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, customerID, "POST /api/checkout",
			requestHash(customerID, "1001"), testNow.Add(24*time.Hour)).Return(nil)
		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{booked, failed}, nil)
		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil).Times(2)
		h.bank.EXPECT().Transfer(gomock.Any(), transfer(customerAccount, platformAccount, "250")).Return(true)
		h.purchases.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, settlementAccount, "180")).Return(true)
		h.gw.EXPECT().CreateReservation(gomock.Any(), svc, shared.BookingRequestFor(booked, "H-A", customer.Profile{})).
			Return(shared.BookingResult{ConfirmationCode: "CONF-A"}, nil)
		h.gw.EXPECT().GenerateInvoice(gomock.Any(), svc, gomock.Any()).Return("", shared.ErrProviderUnavailable)
		h.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		h.purchases.EXPECT().Link(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, booked.ID()).Return(nil)

		h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, settlementAccount, "45")).Return(true)
		h.gw.EXPECT().CreateReservation(gomock.Any(), svc, shared.BookingRequestFor(failed, "H-B", customer.Profile{})).
			Return(shared.BookingResult{}, shared.ErrProviderUnavailable)
		h.bank.EXPECT().Transfer(gomock.Any(), transfer(settlementAccount, platformAccount, "45")).Return(true)
		h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, customerAccount, "50")).Return(false)
		h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, failed.ID()).Return(nil)

		h.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		var stored commands.CheckoutResult
		h.idempotency.EXPECT().Complete(gomock.Any(), gomock.Any(), key, customerID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, _, _ uuid.UUID, purchaseID *uuid.UUID, body []byte) error {
				require.NotNil(t, purchaseID)
				require.NoError(t, json.Unmarshal(body, &stored))
				return nil
			})

		result, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
			IdempotencyKey:  key,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.RefundRequired, "the refused refund leaves 50 with the platform")
		assert.True(t, result.RefundAmount.Equal(decimal.NewFromInt(50)))
		require.Len(t, result.Items, 2)
		assert.Equal(t, commands.ItemBooked, result.Items[0].Status)
		assert.Equal(t, commands.StepFailedNonFatal, result.Items[0].Invoice)
		assert.Equal(t, commands.ItemCompensated, result.Items[1].Status)
		assert.True(t, result.Items[1].Compensation.ProviderReversal)
		assert.False(t, result.Items[1].Compensation.CustomerRefund)
		assert.Equal(t, result.PurchaseID, stored.PurchaseID)
		assert.Len(t, stored.Items, 2)
	})

	t.Run("success: items without a live hold are deferred and not charged", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		svc := builder.NewServiceBuilder().MustBuild()
		ready := heldItem(customerID, svc.ID(), "H-1").AsTable().WithPrice("40").Build()
		expired := heldItem(customerID, svc.ID(), "H-2").WithHold("H-2", later(-time.Second)).Build()
		unheld := heldItem(customerID, svc.ID(), "").WithoutHold().Build()
		expectLock(h, customerID)

		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{expired, ready, unheld}, nil)
		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)
		h.bank.EXPECT().Transfer(gomock.Any(), transfer(customerAccount, platformAccount, "40")).Return(true)
		h.purchases.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, settlementAccount, "36")).Return(true)
		h.gw.EXPECT().CreateReservation(gomock.Any(), svc, gomock.Any()).Return(shared.BookingResult{ConfirmationCode: "T-1"}, nil)
		h.gw.EXPECT().GenerateInvoice(gomock.Any(), svc, gomock.Any()).Return("https://inv/T-1", nil)
		h.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		h.purchases.EXPECT().Link(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, ready.ID()).Return(nil)
		h.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		result, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
		})

		require.NoError(t, err)
		assert.True(t, result.Total.Equal(decimal.NewFromInt(40)))
		assert.ElementsMatch(t, []uuid.UUID{expired.ID(), unheld.ID()}, result.Deferred)
		require.Len(t, result.Items, 1)
		assert.Equal(t, ready.ID(), result.Items[0].ItemID)
	})

	t.Run("failure: nothing held means nothing is charged", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		expired := heldItem(customerID, uuid.New(), "H-2").WithHold("H-2", later(-time.Minute)).Build()
		unheld := heldItem(customerID, uuid.New(), "").WithoutHold().Build()
		released := expectLock(h, customerID)

		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{expired, unheld}, nil)

		result, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrNothingToCharge)
		assert.Nil(t, result)
		assert.True(t, *released)
	})

	t.Run("failure: refused debit stops the checkout and releases the key", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		key := uuid.New()
		svc := builder.NewServiceBuilder().MustBuild()
		item := heldItem(customerID, svc.ID(), "H-1").Build()
		expectLock(h, customerID)

		h.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, customerID, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{item}, nil)
		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)
		h.bank.EXPECT().Transfer(gomock.Any(), transfer(customerAccount, platformAccount, "200")).Return(false)
		h.idempotency.EXPECT().Release(gomock.Any(), gomock.Any(), key, customerID).Return(nil)

		_, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
			IdempotencyKey:  key,
		})

		assert.ErrorIs(t, err, commands.ErrPaymentFailed)
	})

	t.Run("failure: purchase insert after debit refunds the debit", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		svc := builder.NewServiceBuilder().MustBuild()
		item := heldItem(customerID, svc.ID(), "H-1").Build()
		expectLock(h, customerID)

		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{item}, nil)
		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)
		gomock.InOrder(
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(customerAccount, platformAccount, "200")).Return(true),
			h.purchases.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(infra.WrapRepoErr("insert purchase", errors.New("conn reset"))),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, customerAccount, "200")).Return(true),
		)

		_, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
		})

		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrDatabaseOperationFailed))
	})

	t.Run("success: refused payout refunds the item and drops it from the cart", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		svc := builder.NewServiceBuilder().MustBuild()
		booked := heldItem(customerID, svc.ID(), "H-A").Build()
		refused := heldItem(customerID, svc.ID(), "H-B").AsTable().WithPrice("50").Build()
		expectLock(h, customerID)

		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{booked, refused}, nil)
		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil).Times(2)
		gomock.InOrder(
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(customerAccount, platformAccount, "250")).Return(true),
			h.purchases.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, settlementAccount, "180")).Return(true),
			h.gw.EXPECT().CreateReservation(gomock.Any(), svc, gomock.Any()).Return(shared.BookingResult{ConfirmationCode: "CONF-A"}, nil),
			h.gw.EXPECT().GenerateInvoice(gomock.Any(), svc, gomock.Any()).Return("https://inv/CONF-A", nil),
			h.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.purchases.EXPECT().Link(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, booked.ID()).Return(nil),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, settlementAccount, "45")).Return(false),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, customerAccount, "50")).Return(true),
			h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, refused.ID()).Return(nil),
		)
		h.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		result, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.RefundRequired)
		assert.True(t, result.RefundAmount.IsZero())
		require.Len(t, result.Items, 2)
		got := result.Items[1]
		assert.Equal(t, commands.ItemSkipped, got.Status)
		assert.Equal(t, commands.ErrPaymentFailed.Error(), got.Reason)
		assert.Equal(t, &commands.Compensation{ProviderReversal: false, CustomerRefund: true}, got.Compensation)
		assert.Empty(t, result.Deferred)
	})

	t.Run("success: refused payout and refused refund leave the item amount outstanding", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		svc := builder.NewServiceBuilder().MustBuild()
		item := heldItem(customerID, svc.ID(), "H-1").Build()
		expectLock(h, customerID)

		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{item}, nil)
		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)
		gomock.InOrder(
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(customerAccount, platformAccount, "200")).Return(true),
			h.purchases.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, settlementAccount, "180")).Return(false),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, customerAccount, "200")).Return(false),
			h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, item.ID()).Return(nil),
		)
		h.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		result, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
		})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.True(t, result.RefundRequired)
		assert.True(t, result.RefundAmount.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, commands.ItemSkipped, result.Items[0].Status)
		assert.False(t, result.Items[0].Compensation.CustomerRefund)
	})

	t.Run("success: hold that lapses while earlier items book is refunded, not booked", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		svc := builder.NewServiceBuilder().MustBuild()
		first := heldItem(customerID, svc.ID(), "H-A").WithHold("H-A", later(time.Hour)).Build()
		lapsing := heldItem(customerID, svc.ID(), "H-B").AsTable().WithPrice("50").WithHold("H-B", later(5*time.Minute)).Build()
		expectLock(h, customerID)

		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{first, lapsing}, nil)
		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil).Times(2)
		gomock.InOrder(
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(customerAccount, platformAccount, "250")).Return(true),
			h.purchases.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, settlementAccount, "180")).Return(true),
			h.gw.EXPECT().CreateReservation(gomock.Any(), svc, shared.BookingRequestFor(first, "H-A", customer.Profile{})).
				DoAndReturn(func(context.Context, *catalog.Service, shared.BookingRequest) (shared.BookingResult, error) {
					h.clock.Add(10 * time.Minute)
					return shared.BookingResult{ConfirmationCode: "CONF-A"}, nil
				}),
			h.gw.EXPECT().GenerateInvoice(gomock.Any(), svc, gomock.Any()).Return("https://inv/CONF-A", nil),
			h.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.purchases.EXPECT().Link(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, first.ID()).Return(nil),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, customerAccount, "50")).Return(true),
		)
		h.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		result, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.RefundRequired)
		require.Len(t, result.Items, 2)
		assert.Equal(t, commands.ItemSkipped, result.Items[1].Status)
		assert.Equal(t, commands.ErrHoldExpired.Error(), result.Items[1].Reason)
		assert.Equal(t, []uuid.UUID{lapsing.ID()}, result.Deferred, "the item stays in the cart for a new hold")
	})

	t.Run("success: caller going away after the debit does not stop the bookings", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		svc := builder.NewServiceBuilder().MustBuild()
		item := heldItem(customerID, svc.ID(), "H-1").Build()
		expectLock(h, customerID)
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		live := func(ctx context.Context) {
			assert.NoError(t, ctx.Err(), "saga steps after the debit must not see the caller's cancellation")
		}
		h.reads.EXPECT().CartItems(gomock.Any(), customerID).Return([]*cart.Item{item}, nil)
		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)
		gomock.InOrder(
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(customerAccount, platformAccount, "200")).
				DoAndReturn(func(context.Context, shared.Transfer) bool {
					cancel()
					return true
				}),
			h.purchases.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, _ db.DBTX, _ *purchase.Purchase) error {
					live(ctx)
					return nil
				}),
			h.bank.EXPECT().Transfer(gomock.Any(), transfer(platformAccount, settlementAccount, "180")).
				DoAndReturn(func(ctx context.Context, _ shared.Transfer) bool {
					live(ctx)
					return true
				}),
			h.gw.EXPECT().CreateReservation(gomock.Any(), svc, gomock.Any()).
				DoAndReturn(func(ctx context.Context, _ *catalog.Service, _ shared.BookingRequest) (shared.BookingResult, error) {
					live(ctx)
					return shared.BookingResult{ConfirmationCode: "CONF-1"}, nil
				}),
			h.gw.EXPECT().GenerateInvoice(gomock.Any(), svc, gomock.Any()).Return("https://inv/CONF-1", nil),
			h.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.purchases.EXPECT().Link(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, item.ID()).Return(nil),
		)
		h.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		result, err := newCheckoutSaga(t, h).Checkout(ctx, commands.CheckoutInput{
			CustomerID:      customerID,
			CustomerAccount: customerAccount,
		})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, commands.ItemBooked, result.Items[0].Status)
	})

	t.Run("failure: concurrent checkout of the same customer", func(t *testing.T) {
		h := newHarness(t)
		customerID := uuid.New()
		h.locker.EXPECT().Acquire(gomock.Any(), "checkout:"+customerID.String(), gomock.Any()).Return(nil, shared.ErrLockHeld)

		_, err := newCheckoutSaga(t, h).Checkout(t.Context(), commands.CheckoutInput{CustomerID: customerID})

		assert.ErrorIs(t, err, commands.ErrCheckoutInProgress)
	})
}

func TestCheckoutSaga_Idempotency(t *testing.T) {
	duplicate := infra.WrapRepoErr("insert idempotency key", errors.New("unique violation"), infra.KindDuplicateKey)

	in := func(customerID, key uuid.UUID) commands.CheckoutInput {
		return commands.CheckoutInput{CustomerID: customerID, CustomerAccount: customerAccount, IdempotencyKey: key}
	}

	t.Run("success: completed key replays the stored result", func(t *testing.T) {
		h := newHarness(t)
		customerID, key := uuid.New(), uuid.New()
		expectLock(h, customerID)
		stored := commands.CheckoutResult{
			PurchaseID: uuid.New(),
			Total:      decimal.NewFromInt(200),
			Success:    true,
			Items:      []commands.ItemCheckoutResult{{ItemID: uuid.New(), Status: commands.ItemBooked}},
			Deferred:   []uuid.UUID{},
		}
		body, err := json.Marshal(stored)
		require.NoError(t, err)

		h.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, customerID, gomock.Any(), gomock.Any(), gomock.Any()).Return(duplicate)
		h.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, customerID).Return(&shared.IdempotencyRecord{
			Key:          key,
			CustomerID:   customerID,
			Endpoint:     "POST /api/checkout",
			Status:       shared.IdempotencyCompleted,
			RequestHash:  requestHash(customerID, "1001"),
			ResponseBody: body,
			ExpiresAt:    testNow.Add(time.Hour),
		}, nil)

		result, err := newCheckoutSaga(t, h).Checkout(t.Context(), in(customerID, key))

		require.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Equal(t, stored.PurchaseID, result.PurchaseID)
		assert.True(t, result.Total.Equal(stored.Total))
		require.Len(t, result.Items, 1)
	})

	t.Run("failure: key still processing", func(t *testing.T) {
		h := newHarness(t)
		customerID, key := uuid.New(), uuid.New()
		expectLock(h, customerID)

		h.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, customerID, gomock.Any(), gomock.Any(), gomock.Any()).Return(duplicate)
		h.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, customerID).Return(&shared.IdempotencyRecord{
			Endpoint:    "POST /api/checkout",
			Status:      shared.IdempotencyProcessing,
			RequestHash: requestHash(customerID, "1001"),
			ExpiresAt:   testNow.Add(time.Hour),
		}, nil)

		_, err := newCheckoutSaga(t, h).Checkout(t.Context(), in(customerID, key))

		assert.ErrorIs(t, err, commands.ErrCheckoutInProgress)
	})

	t.Run("failure: key reused for another account", func(t *testing.T) {
		h := newHarness(t)
		customerID, key := uuid.New(), uuid.New()
		expectLock(h, customerID)

		h.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, customerID, gomock.Any(), gomock.Any(), gomock.Any()).Return(duplicate)
		h.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, customerID).Return(&shared.IdempotencyRecord{
			Endpoint:    "POST /api/checkout",
			Status:      shared.IdempotencyCompleted,
			RequestHash: requestHash(customerID, "9999"),
			ExpiresAt:   testNow.Add(time.Hour),
		}, nil)

		_, err := newCheckoutSaga(t, h).Checkout(t.Context(), in(customerID, key))

		assert.ErrorIs(t, err, commands.ErrIdempotencyKeyReused)
	})

	t.Run("failure: expired key taken over by someone else first", func(t *testing.T) {
		h := newHarness(t)
		customerID, key := uuid.New(), uuid.New()
		expectLock(h, customerID)
		hash := requestHash(customerID, "1001")

		h.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, customerID, gomock.Any(), gomock.Any(), gomock.Any()).Return(duplicate)
		h.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, customerID).Return(&shared.IdempotencyRecord{
			Endpoint:    "POST /api/checkout",
			Status:      shared.IdempotencyProcessing,
			RequestHash: hash,
			ExpiresAt:   testNow.Add(-time.Minute),
		}, nil)
		h.idempotency.EXPECT().ClaimExpired(gomock.Any(), gomock.Any(), key, customerID, hash, testNow.Add(24*time.Hour)).Return(int64(0), nil)

		_, err := newCheckoutSaga(t, h).Checkout(t.Context(), in(customerID, key))

		assert.ErrorIs(t, err, commands.ErrCheckoutInProgress)
	})
}
