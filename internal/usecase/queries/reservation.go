package queries

import (
	"context"

	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation_mock.go -package=queriesmock

type ReservationQueries interface {
	GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*ReservationView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
	IsCancelled(ctx context.Context, viewer Viewer, id uuid.UUID) (*ReservationStatusView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByCustomerFirstPage(ctx context.Context, customerID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindByCustomerKeyset(ctx context.Context, customerID uuid.UUID, after Keyset, limit int32) ([]*ReservationListItem, error)
	FindStatus(ctx context.Context, id uuid.UUID) (*ReservationStatusView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*ReservationView, error) {
	v, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	// Another customer's reservation is reported as missing
	if !viewer.CanSee(v.CustomerID) {
		return nil, ErrReservationNotFound
	}
	return v, nil
}

// ListByCustomer pages newest first. The returned cursor is nil on the last page.
func (q *reservationQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var keyset *Keyset
	if after != nil {
		var err error
		if keyset, err = DecodeAfterCursor(after.After); err != nil {
			return nil, nil, err
		}
	}

	// One extra row tells whether another page exists
	fetch := int32(limit + 1)
	var (
		rows []*ReservationListItem
		err  error
	)
	if keyset == nil {
		rows, err = q.repo.FindByCustomerFirstPage(ctx, customerID, fetch)
	} else {
		rows, err = q.repo.FindByCustomerKeyset(ctx, customerID, *keyset, fetch)
	}
	if err != nil {
		return nil, nil, errs.Wrap(err, "list reservations")
	}

	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	last := rows[len(rows)-1]
	return rows, &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}, nil
}

func (q *reservationQueriesImpl) IsCancelled(ctx context.Context, viewer Viewer, id uuid.UUID) (*ReservationStatusView, error) {
	v, err := q.repo.FindStatus(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if !viewer.CanSee(v.CustomerID) {
		return nil, ErrReservationNotFound
	}
	return v, nil
}
