package repository

import (
	"context"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/infra/repository/converter"
	"booking-orchestrator/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) Add(ctx context.Context, q db.DBTX, item *cart.Item) error {
	row, err := converter.CartItemToRow(item)
	if err != nil {
		return infra.WrapRepoErr("failed to encode cart item", err)
	}

	_, err = q.Exec(ctx, `
INSERT INTO cart_items (
	id, customer_id, service_id, capability, product_id, product_name,
	unit_price_cents, currency, start_at, end_at, hold_id, hold_expires_at, payload, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		row.ID, row.CustomerID, row.ServiceID, row.Capability, row.ProductID, row.ProductName,
		row.UnitPriceCents, row.Currency, row.StartAt, row.EndAt, row.HoldID, row.HoldExpiresAt, row.Payload, row.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to add cart item", err)
	}
	return nil
}

func (r *CartRepository) AttachHold(ctx context.Context, q db.DBTX, itemID uuid.UUID, hold cart.Hold) error {
	tag, err := q.Exec(ctx,
		`UPDATE cart_items SET hold_id = $2, hold_expires_at = $3 WHERE id = $1`,
		itemID, pgconv.StringToPgtype(hold.ID), pgconv.TimePtrToPgtype(hold.Expiry),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to attach hold", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, q db.DBTX, customerID, itemID uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND customer_id = $2`, itemID, customerID)
	if err != nil {
		return infra.WrapRepoErr("failed to remove cart item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
	}
	return nil
}
