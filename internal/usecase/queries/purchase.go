package queries

import (
	"context"

	"booking-orchestrator/internal/infra"

	"github.com/google/uuid"
)

//go:generate mockgen -source=purchase.go -destination=../../../tests/mock/queries/purchase_mock.go -package=queriesmock

type PurchaseQueries interface {
	GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*PurchaseView, error)
}

type PurchaseViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseView, error)
}

type purchaseQueriesImpl struct {
	repo PurchaseViewRepo
}

func NewPurchaseQueries(repo PurchaseViewRepo) PurchaseQueries {
	return &purchaseQueriesImpl{repo: repo}
}

func (q *purchaseQueriesImpl) GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*PurchaseView, error) {
	v, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	if !viewer.CanSee(v.CustomerID) {
		return nil, ErrPurchaseNotFound
	}
	return v, nil
}
