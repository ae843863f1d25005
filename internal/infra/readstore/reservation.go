package readstore

import (
	"context"

	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/pkg/money"
	"booking-orchestrator/internal/pkg/pgconv"
	"booking-orchestrator/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(q db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: q}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		v                    queries.ReservationView
		invoiceURL           pgtype.Text
		business, commission int64
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
SELECT r.id, r.service_id, s.name, r.customer_id, r.capability, r.product_id, r.product_name,
	r.confirmation_code, r.provider_reservation_id, r.invoice_url, r.active,
	r.amount_paid_to_business_cents, r.platform_commission_cents, r.created_at, r.updated_at
FROM reservations r
JOIN services s ON s.id = r.service_id
WHERE r.id = $1`, id).Scan(
		&v.ID, &v.ServiceID, &v.ServiceName, &v.CustomerID, &v.Capability, &v.ProductID, &v.ProductName,
		&v.ConfirmationCode, &v.ProviderReservationID, &invoiceURL, &v.Active,
		&business, &commission, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	v.InvoiceURL = pgconv.StringPtrFromPgtype(invoiceURL)
	v.AmountPaidToBusiness = money.FromCents(business)
	v.PlatformCommission = money.FromCents(commission)
	v.Amount = money.FromCents(business + commission)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

const reservationListSelect = `
SELECT r.id, r.service_id, s.name, r.capability, r.product_name, r.confirmation_code, r.active,
	r.amount_paid_to_business_cents + r.platform_commission_cents, r.created_at
FROM reservations r
JOIN services s ON s.id = r.service_id`

func (r *ReservationReadStore) FindByCustomerFirstPage(ctx context.Context, customerID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, reservationListSelect+`
WHERE r.customer_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2`, customerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations first page", err)
	}
	return collectListItems(rows)
}

func (r *ReservationReadStore) FindByCustomerKeyset(ctx context.Context, customerID uuid.UUID, after queries.Keyset, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, reservationListSelect+`
WHERE r.customer_id = $1 AND (r.created_at, r.id) < ($2, $3)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4`, customerID, pgconv.TimeToPgtype(after.CreatedAt), after.ID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations keyset", err)
	}
	return collectListItems(rows)
}

func (r *ReservationReadStore) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, reservationListSelect+`
JOIN purchase_reservations pr ON pr.reservation_id = r.id
WHERE pr.purchase_id = $1
ORDER BY r.created_at, r.id`, purchaseID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by purchase", err)
	}
	return collectListItems(rows)
}

func (r *ReservationReadStore) FindStatus(ctx context.Context, id uuid.UUID) (*queries.ReservationStatusView, error) {
	var (
		v      queries.ReservationStatusView
		active bool
	)
	err := r.db.QueryRow(ctx, `SELECT id, customer_id, active FROM reservations WHERE id = $1`, id).
		Scan(&v.ID, &v.CustomerID, &active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation status", err)
	}
	v.Cancelled = !active
	return &v, nil
}

func collectListItems(rows pgx.Rows) ([]*queries.ReservationListItem, error) {
	defer rows.Close()

	result := []*queries.ReservationListItem{}
	for rows.Next() {
		var (
			item      queries.ReservationListItem
			cents     int64
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.ServiceID, &item.ServiceName, &item.Capability, &item.ProductName,
			&item.ConfirmationCode, &item.Active, &cents, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		item.Amount = money.FromCents(cents)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return result, nil
}
