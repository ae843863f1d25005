package readstore

import (
	"context"

	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/pkg/money"
	"booking-orchestrator/internal/pkg/pgconv"
	"booking-orchestrator/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PurchaseReadStore struct {
	db           db.DBTX
	reservations *ReservationReadStore
}

func NewPurchaseReadStore(q db.DBTX) *PurchaseReadStore {
	return &PurchaseReadStore{db: q, reservations: NewReservationReadStore(q)}
}

// FindByID loads the purchase with the reservations it produced
func (r *PurchaseReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PurchaseView, error) {
	var (
		v          queries.PurchaseView
		totalCents int64
		invoiceURL pgtype.Text
		createdAt  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, customer_id, total_cents, invoice_url, created_at FROM purchases WHERE id = $1`, id,
	).Scan(&v.ID, &v.CustomerID, &totalCents, &invoiceURL, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("purchase not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find purchase by ID", err)
	}
	v.Total = money.FromCents(totalCents)
	v.InvoiceURL = pgconv.StringPtrFromPgtype(invoiceURL)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)

	v.Reservations, err = r.reservations.FindByPurchase(ctx, id)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
