package queries

import (
	"context"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/queries/cart_mock.go -package=queriesmock

type CartQueries interface {
	Get(ctx context.Context, customerID uuid.UUID) (*CartView, error)
}

type CartRepo interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*cart.Item, error)
}

type cartQueriesImpl struct {
	repo  CartRepo
	clock clock.Clock
}

func NewCartQueries(repo CartRepo, clk clock.Clock) CartQueries {
	return &cartQueriesImpl{repo: repo, clock: clk}
}

// Get returns the cart in insertion order. BookableTotal is what a checkout at this instant would debit.
func (q *cartQueriesImpl) Get(ctx context.Context, customerID uuid.UUID) (*CartView, error) {
	items, err := q.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, errs.Wrap(err, "list cart items")
	}

	now := q.clock.Now()
	view := &CartView{
		CustomerID:    customerID,
		Items:         make([]*CartItemView, 0, len(items)),
		Total:         decimal.Zero,
		BookableTotal: decimal.Zero,
	}
	for _, it := range items {
		v := &CartItemView{
			ID:          it.ID(),
			ServiceID:   it.ServiceID(),
			Capability:  it.Capability().String(),
			ProductID:   it.ProductID(),
			ProductName: it.ProductName(),
			UnitPrice:   it.UnitPrice(),
			Quantity:    it.Quantity(),
			Amount:      it.Amount(),
			Currency:    it.Currency(),
			Start:       it.Start(),
			End:         it.End(),
			Bookable:    it.ConsumableAt(now),
			Payload:     it.Payload(),
		}
		if hold, ok := it.Hold(); ok {
			id := hold.ID
			v.HoldID = &id
			v.HoldExpiresAt = hold.Expiry
		}
		view.Total = view.Total.Add(v.Amount)
		if v.Bookable {
			view.BookableTotal = view.BookableTotal.Add(v.Amount)
		}
		view.Items = append(view.Items, v)
	}
	return view, nil
}
