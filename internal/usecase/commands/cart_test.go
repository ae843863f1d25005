//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/purchase"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/commands"
	"booking-orchestrator/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func addHotelInput(customerID, serviceID uuid.UUID) commands.AddItemInput {
	start := time.Date(2026, 11, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	return commands.AddItemInput{
		CustomerID: customerID,
		ServiceID:  serviceID,
		ProductID:  "room-101",
		UnitPrice:  decimal.NewFromInt(100),
		Start:      start,
		End:        &end,
		Payload:    cart.HotelPayload{RoomType: "double", Guests: 2},
	}
}

func TestCartCommands_AddItem(t *testing.T) {
	customerID := uuid.New()

	t.Run("success: stores a validated item", func(t *testing.T) {
		h := newHarness(t)
		svc := builder.NewServiceBuilder().MustBuild()
		var stored *cart.Item

		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)
		h.cart.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, item *cart.Item) error {
				stored = item
				return nil
			})

		id, err := commands.NewCartCommands(h.uow, h.gateways, h.clock).AddItem(t.Context(), addHotelInput(customerID, svc.ID()))

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, stored.ID(), id)
		assert.Equal(t, "USD", stored.Currency())
		assert.True(t, stored.Amount().Equal(decimal.NewFromInt(200)))
		assert.False(t, stored.HasHold())
		assert.Equal(t, testNow, stored.CreatedAt())
	})

	t.Run("success: availability is checked when asked", func(t *testing.T) {
		h := newHarness(t)
		svc := builder.NewServiceBuilder().MustBuild()
		in := addHotelInput(customerID, svc.ID())
		in.Verify = true

		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)
		h.gw.EXPECT().CheckAvailability(gomock.Any(), svc, gomock.Any()).Return(true, nil)
		h.cart.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := commands.NewCartCommands(h.uow, h.gateways, h.clock).AddItem(t.Context(), in)
		require.NoError(t, err)
	})

	t.Run("failure: unavailable item is not stored", func(t *testing.T) {
		h := newHarness(t)
		svc := builder.NewServiceBuilder().MustBuild()
		in := addHotelInput(customerID, svc.ID())
		in.Verify = true

		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)
		h.gw.EXPECT().CheckAvailability(gomock.Any(), svc, gomock.Any()).Return(false, nil)

		_, err := commands.NewCartCommands(h.uow, h.gateways, h.clock).AddItem(t.Context(), in)
		assert.ErrorIs(t, err, commands.ErrItemUnavailable)
	})

	t.Run("failure: payload does not match the service capability", func(t *testing.T) {
		h := newHarness(t)
		svc := builder.NewServiceBuilder().WithCapability(catalog.CapabilityFlight).MustBuild()

		h.reads.EXPECT().ServiceByID(gomock.Any(), svc.ID()).Return(svc, nil)

		_, err := commands.NewCartCommands(h.uow, h.gateways, h.clock).AddItem(t.Context(), addHotelInput(customerID, svc.ID()))
		assert.True(t, errs.Is(err, cart.ErrInvalidItem))
	})

	t.Run("failure: unknown and inactive services", func(t *testing.T) {
		h := newHarness(t)
		missing := uuid.New()
		inactive := builder.NewServiceBuilder().With(func(b *builder.ServiceBuilder) { b.Active = false }).MustBuild()

		h.reads.EXPECT().ServiceByID(gomock.Any(), missing).Return(nil, infra.WrapRepoErr("find service", nil, infra.KindNotFound))
		h.reads.EXPECT().ServiceByID(gomock.Any(), inactive.ID()).Return(inactive, nil)

		uc := commands.NewCartCommands(h.uow, h.gateways, h.clock)
		_, err := uc.AddItem(t.Context(), addHotelInput(customerID, missing))
		assert.ErrorIs(t, err, commands.ErrServiceNotFound)
		_, err = uc.AddItem(t.Context(), addHotelInput(customerID, inactive.ID()))
		assert.ErrorIs(t, err, commands.ErrServiceInactive)
	})
}

func TestCartCommands_RemoveItem(t *testing.T) {
	h := newHarness(t)
	customerID, itemID := uuid.New(), uuid.New()

	h.cart.EXPECT().Remove(gomock.Any(), gomock.Any(), customerID, itemID).
		Return(infra.WrapRepoErr("delete cart item", nil, infra.KindNotFound))

	err := commands.NewCartCommands(h.uow, h.gateways, h.clock).RemoveItem(t.Context(), customerID, itemID)
	assert.ErrorIs(t, err, commands.ErrCartItemNotFound)
}

func TestPurchaseCommands_SetInvoiceURL(t *testing.T) {
	t.Run("success: stores the new url", func(t *testing.T) {
		h := newHarness(t)
		p := purchase.ReconstructPurchase(uuid.New(), uuid.New(), customerAccount, decimal.NewFromInt(200), "", testNow)

		h.purchases.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), p.ID()).Return(p, nil)
		h.purchases.EXPECT().UpdateInvoiceURL(gomock.Any(), gomock.Any(), p).Return(nil)

		err := commands.NewPurchaseCommands(h.uow).SetInvoiceURL(t.Context(), p.ID(), "https://invoices.example/42")

		require.NoError(t, err)
		assert.Equal(t, "https://invoices.example/42", p.InvoiceURL())
	})

	t.Run("failure: malformed url", func(t *testing.T) {
		h := newHarness(t)
		p := purchase.ReconstructPurchase(uuid.New(), uuid.New(), customerAccount, decimal.NewFromInt(200), "", testNow)

		h.purchases.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), p.ID()).Return(p, nil)

		err := commands.NewPurchaseCommands(h.uow).SetInvoiceURL(t.Context(), p.ID(), "ftp:/nowhere")
		assert.True(t, errs.Is(err, purchase.ErrInvalidInvoiceURL))
	})

	t.Run("failure: unknown purchase", func(t *testing.T) {
		h := newHarness(t)
		id := uuid.New()

		h.purchases.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("find purchase", nil, infra.KindNotFound))

		err := commands.NewPurchaseCommands(h.uow).SetInvoiceURL(t.Context(), id, "https://invoices.example/42")
		assert.ErrorIs(t, err, commands.ErrPurchaseNotFound)
	})
}
