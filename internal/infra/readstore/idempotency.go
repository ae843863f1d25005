package readstore

import (
	"context"

	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/pkg/pgconv"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyStore interface {
	Get(ctx context.Context, tx db.DBTX, key uuid.UUID, customerID uuid.UUID) (*shared.IdempotencyRecord, error)
}

type IdempotencyReadStore struct{}

func NewIdempotencyReadStore() *IdempotencyReadStore {
	return &IdempotencyReadStore{}
}

// Get returns the record even when expired; callers decide whether to reclaim it
func (r *IdempotencyReadStore) Get(ctx context.Context, tx db.DBTX, key uuid.UUID, customerID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		record    shared.IdempotencyRecord
		purchase  pgtype.UUID
		expiresAt pgtype.Timestamptz
	)
	err := tx.QueryRow(ctx, `
SELECT key, customer_id, endpoint, status, request_hash, result_purchase_id, response_body, expires_at
FROM idempotency_keys
WHERE key = $1 AND customer_id = $2`, key, customerID,
	).Scan(&record.Key, &record.CustomerID, &record.Endpoint, &record.Status, &record.RequestHash,
		&purchase, &record.ResponseBody, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	record.ResultPurchaseID = pgconv.UUIDPtrFromPgtype(purchase)
	record.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	return &record, nil
}
