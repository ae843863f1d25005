package readstore

import (
	"context"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/infra/repository/converter"
	"booking-orchestrator/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CartStore interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*cart.Item, error)
	FindItem(ctx context.Context, customerID, itemID uuid.UUID) (*cart.Item, error)
}

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(q db.DBTX) *CartReadStore {
	return &CartReadStore{db: q}
}

const cartColumns = `id, customer_id, service_id, capability, product_id, product_name,
	unit_price_cents, currency, start_at, end_at, hold_id, hold_expires_at, payload, created_at`

// ListByCustomer returns items in the order they were added
func (r *CartReadStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*cart.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE customer_id = $1 ORDER BY seq`, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cart items", err)
	}
	defer rows.Close()

	items := []*cart.Item{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate cart items", err)
	}
	return items, nil
}

func (r *CartReadStore) FindItem(ctx context.Context, customerID, itemID uuid.UUID) (*cart.Item, error) {
	row := r.db.QueryRow(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE id = $1 AND customer_id = $2`, itemID, customerID)
	item, err := scanCartItem(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cart item not found", err, infra.KindNotFound)
		}
		return nil, err
	}
	return item, nil
}

func scanCartItem(s pgx.Row) (*cart.Item, error) {
	var row converter.CartItemRow
	err := s.Scan(
		&row.ID, &row.CustomerID, &row.ServiceID, &row.Capability, &row.ProductID, &row.ProductName,
		&row.UnitPriceCents, &row.Currency, &row.StartAt, &row.EndAt, &row.HoldID, &row.HoldExpiresAt,
		&row.Payload, &row.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan cart item", err)
	}
	item, err := converter.CartItemToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode cart item", err)
	}
	return item, nil
}
