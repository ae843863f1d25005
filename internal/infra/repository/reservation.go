package repository

import (
	"context"

	"booking-orchestrator/internal/domain/reservation"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/infra/repository/converter"
	"booking-orchestrator/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, q db.DBTX, res *reservation.Reservation) error {
	row := converter.ReservationToRow(res)

	_, err := q.Exec(ctx, `
INSERT INTO reservations (`+converter.ReservationColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		row.Values()...,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

// FindForUpdate locks the row until the surrounding transaction ends
func (r *ReservationRepository) FindForUpdate(ctx context.Context, q db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	var row converter.ReservationRow
	err := q.QueryRow(ctx,
		`SELECT `+converter.ReservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id,
	).Scan(row.ScanTargets()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return converter.ReservationToDomain(row), nil
}

func (r *ReservationRepository) MarkCancelled(ctx context.Context, q db.DBTX, res *reservation.Reservation) error {
	tag, err := q.Exec(ctx,
		`UPDATE reservations SET active = $2, updated_at = $3 WHERE id = $1`,
		res.ID(), res.IsActive(), pgconv.TimeToPgtype(res.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
