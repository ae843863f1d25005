package repository

import (
	"context"
	"time"

	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/pkg/pgconv"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

// TryInsert fails with KindDuplicateKey when the key is already taken
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, customerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	_, err := tx.Exec(ctx, `
INSERT INTO idempotency_keys (key, customer_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		key, customerID, endpoint, requestHash, shared.IdempotencyProcessing, pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, tx db.DBTX, key, customerID uuid.UUID, purchaseID *uuid.UUID, responseBody []byte) error {
	_, err := tx.Exec(ctx, `
UPDATE idempotency_keys
SET status = $3, result_purchase_id = $4, response_body = $5, updated_at = NOW()
WHERE key = $1 AND customer_id = $2`,
		key, customerID, shared.IdempotencyCompleted, pgconv.UUIDPtrToPgtype(purchaseID), responseBody,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

// ClaimExpired takes over a key whose previous holder expired; it returns the rows claimed
func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, tx db.DBTX, key, customerID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `
UPDATE idempotency_keys
SET status = $3, request_hash = $4, expires_at = $5, result_purchase_id = NULL, response_body = NULL, updated_at = NOW()
WHERE key = $1 AND customer_id = $2 AND expires_at < NOW()`,
		key, customerID, shared.IdempotencyProcessing, requestHash, pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}

// Release drops an unfinished key so the client can retry
func (r *IdempotencyRepository) Release(ctx context.Context, tx db.DBTX, key, customerID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`DELETE FROM idempotency_keys WHERE key = $1 AND customer_id = $2 AND status = $3`,
		key, customerID, shared.IdempotencyProcessing,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx db.DBTX) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at < NOW()`)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
