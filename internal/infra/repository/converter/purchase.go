package converter

import (
	"booking-orchestrator/internal/domain/purchase"
	"booking-orchestrator/internal/pkg/money"
	"booking-orchestrator/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PurchaseRow struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	CustomerAccount int64
	TotalCents      int64
	InvoiceURL      pgtype.Text
	CreatedAt       pgtype.Timestamptz
}

func PurchaseToRow(p *purchase.Purchase) PurchaseRow {
	return PurchaseRow{
		ID:              p.ID(),
		CustomerID:      p.CustomerID(),
		CustomerAccount: p.CustomerAccount(),
		TotalCents:      money.ToCents(p.Total()),
		InvoiceURL:      pgconv.StringToPgtype(p.InvoiceURL()),
		CreatedAt:       pgconv.TimeToPgtype(p.CreatedAt()),
	}
}

func PurchaseToDomain(row PurchaseRow) *purchase.Purchase {
	return purchase.ReconstructPurchase(
		row.ID,
		row.CustomerID,
		row.CustomerAccount,
		money.FromCents(row.TotalCents),
		pgconv.StringFromPgtype(row.InvoiceURL),
		pgconv.TimeFromPgtype(row.CreatedAt),
	)
}
