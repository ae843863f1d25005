package repository

import (
	"context"

	"booking-orchestrator/internal/domain/purchase"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/infra/repository/converter"
	"booking-orchestrator/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PurchaseRepository struct{}

func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{}
}

func (r *PurchaseRepository) Create(ctx context.Context, q db.DBTX, p *purchase.Purchase) error {
	row := converter.PurchaseToRow(p)
	_, err := q.Exec(ctx, `
INSERT INTO purchases (id, customer_id, customer_account, total_cents, invoice_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		row.ID, row.CustomerID, row.CustomerAccount, row.TotalCents, row.InvoiceURL, row.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create purchase", err)
	}
	return nil
}

func (r *PurchaseRepository) Link(ctx context.Context, q db.DBTX, link purchase.Link) error {
	_, err := q.Exec(ctx,
		`INSERT INTO purchase_reservations (purchase_id, reservation_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		link.PurchaseID, link.ReservationID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to link reservation to purchase", err)
	}
	return nil
}

func (r *PurchaseRepository) FindForUpdate(ctx context.Context, q db.DBTX, id uuid.UUID) (*purchase.Purchase, error) {
	var row converter.PurchaseRow
	err := q.QueryRow(ctx, `
SELECT id, customer_id, customer_account, total_cents, invoice_url, created_at
FROM purchases WHERE id = $1 FOR UPDATE`, id,
	).Scan(&row.ID, &row.CustomerID, &row.CustomerAccount, &row.TotalCents, &row.InvoiceURL, &row.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("purchase not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock purchase", err)
	}
	return converter.PurchaseToDomain(row), nil
}

func (r *PurchaseRepository) UpdateInvoiceURL(ctx context.Context, q db.DBTX, p *purchase.Purchase) error {
	tag, err := q.Exec(ctx, `UPDATE purchases SET invoice_url = $2 WHERE id = $1`, p.ID(), pgconv.StringToPgtype(p.InvoiceURL()))
	if err != nil {
		return infra.WrapRepoErr("failed to update invoice url", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("purchase not found", nil, infra.KindNotFound)
	}
	return nil
}
