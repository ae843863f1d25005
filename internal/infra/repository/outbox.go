package repository

import (
	"context"
	"encoding/json"
	"time"

	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/pkg/pgconv"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

type OutboxRepository struct{}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, tx db.DBTX, evt shared.OutboxEvent) error {
	headers, err := json.Marshal(evt.Headers)
	if err != nil {
		return infra.WrapRepoErr("failed to encode outbox headers", err)
	}
	_, err = tx.Exec(ctx, `
INSERT INTO outbox_events (id, aggregate_id, event_type, payload, headers, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		evt.ID, evt.AggregateID, evt.EventType, evt.Payload, headers, OutboxPending, pgconv.TimeToPgtype(evt.CreatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}

// LockBatch claims up to limit pending events; concurrent relays skip each other's rows
func (r *OutboxRepository) LockBatch(ctx context.Context, tx db.DBTX, limit int) ([]shared.OutboxEvent, error) {
	rows, err := tx.Query(ctx, `
SELECT id, aggregate_id, event_type, payload, headers, created_at
FROM outbox_events
WHERE status = $1
ORDER BY created_at
LIMIT $2
FOR UPDATE SKIP LOCKED`, OutboxPending, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock outbox batch", err)
	}
	defer rows.Close()

	var out []shared.OutboxEvent
	for rows.Next() {
		var (
			evt       shared.OutboxEvent
			headers   []byte
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&evt.ID, &evt.AggregateID, &evt.EventType, &evt.Payload, &headers, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan outbox event", err)
		}
		if len(headers) > 0 {
			if err := json.Unmarshal(headers, &evt.Headers); err != nil {
				return nil, infra.WrapRepoErr("failed to decode outbox headers", err)
			}
		}
		evt.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate outbox batch", err)
	}
	return out, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, tx db.DBTX, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		`UPDATE outbox_events SET status = $2, sent_at = $3, attempts = attempts + 1 WHERE id = ANY($1)`,
		ids, OutboxSent, pgconv.TimeToPgtype(at),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox events sent", err)
	}
	return nil
}

// MarkFailed keeps the events pending until maxAttempts is reached
func (r *OutboxRepository) MarkFailed(ctx context.Context, tx db.DBTX, ids []uuid.UUID, lastError string, maxAttempts int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
UPDATE outbox_events
SET attempts = attempts + 1,
	last_error = $2,
	status = CASE WHEN attempts + 1 >= $3 THEN $4 ELSE status END
WHERE id = ANY($1)`,
		ids, lastError, maxAttempts, OutboxFailed,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox events failed", err)
	}
	return nil
}
