//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/usecase/shared"
	sharedmock "booking-orchestrator/tests/mock/shared"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

const (
	platformAccount   int64 = 1
	customerAccount   int64 = 1001
	settlementAccount int64 = 2002
)

var testNow = time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)

// harness wires a UnitOfWork mock whose transactions run the callback against a Tx mock
type harness struct {
	ctrl         *gomock.Controller
	uow          *sharedmock.MockUnitOfWork
	tx           *sharedmock.MockTx
	reads        *sharedmock.MockCommandReads
	cart         *sharedmock.MockCartRepository
	reservations *sharedmock.MockReservationRepository
	purchases    *sharedmock.MockPurchaseRepository
	idempotency  *sharedmock.MockIdempotencyRepository
	outbox       *sharedmock.MockOutboxRepository
	gateways     *sharedmock.MockProviderGateways
	gw           *sharedmock.MockProviderGateway
	bank         *sharedmock.MockBank
	locker       *sharedmock.MockLocker
	clock        *clock.MockClock
	logger       *slog.Logger
}

func newHarness(t *testing.T) *harness {
	ctrl := gomock.NewController(t)
	h := &harness{
		ctrl:         ctrl,
		uow:          sharedmock.NewMockUnitOfWork(ctrl),
		tx:           sharedmock.NewMockTx(ctrl),
		reads:        sharedmock.NewMockCommandReads(ctrl),
		cart:         sharedmock.NewMockCartRepository(ctrl),
		reservations: sharedmock.NewMockReservationRepository(ctrl),
		purchases:    sharedmock.NewMockPurchaseRepository(ctrl),
		idempotency:  sharedmock.NewMockIdempotencyRepository(ctrl),
		outbox:       sharedmock.NewMockOutboxRepository(ctrl),
		gateways:     sharedmock.NewMockProviderGateways(ctrl),
		gw:           sharedmock.NewMockProviderGateway(ctrl),
		bank:         sharedmock.NewMockBank(ctrl),
		locker:       sharedmock.NewMockLocker(ctrl),
		clock:        clock.NewMockClock(testNow),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	runTx := func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
		return fn(ctx, h.tx)
	}
	h.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(runTx).AnyTimes()
	h.uow.EXPECT().WithinSerializable(gomock.Any(), gomock.Any()).DoAndReturn(runTx).AnyTimes()
	h.uow.EXPECT().CommandReads().Return(h.reads).AnyTimes()

	h.tx.EXPECT().DB().Return(nil).AnyTimes()
	h.tx.EXPECT().Reads().Return(h.reads).AnyTimes()
	h.tx.EXPECT().Cart().Return(h.cart).AnyTimes()
	h.tx.EXPECT().Reservations().Return(h.reservations).AnyTimes()
	h.tx.EXPECT().Purchases().Return(h.purchases).AnyTimes()
	h.tx.EXPECT().Idempotency().Return(h.idempotency).AnyTimes()
	h.tx.EXPECT().Outbox().Return(h.outbox).AnyTimes()

	h.gateways.EXPECT().For(gomock.Any()).Return(h.gw, nil).AnyTimes()
	return h
}

// transferMatcher compares decimal amounts by value, not by representation
type transferMatcher struct {
	from   int64
	to     int64
	amount decimal.Decimal
}

func transfer(from, to int64, amount string) gomock.Matcher {
	return transferMatcher{from: from, to: to, amount: decimal.RequireFromString(amount)}
}

func (m transferMatcher) Matches(x any) bool {
	t, ok := x.(shared.Transfer)
	return ok && t.From == m.from && t.To == m.to && t.Amount.Equal(m.amount) && t.IdempotencyKey != ""
}

func (m transferMatcher) String() string {
	return fmt.Sprintf("transfer %d -> %d of %s", m.from, m.to, m.amount)
}

func later(d time.Duration) *time.Time {
	t := testNow.Add(d)
	return &t
}
