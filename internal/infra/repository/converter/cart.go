package converter

import (
	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/money"
	"booking-orchestrator/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CartItemRow struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	ServiceID      uuid.UUID
	Capability     string
	ProductID      string
	ProductName    string
	UnitPriceCents int64
	Currency       string
	StartAt        pgtype.Timestamptz
	EndAt          pgtype.Timestamptz
	HoldID         pgtype.Text
	HoldExpiresAt  pgtype.Timestamptz
	Payload        []byte
	CreatedAt      pgtype.Timestamptz
}

func CartItemToRow(item *cart.Item) (CartItemRow, error) {
	payload, err := cart.MarshalPayload(item.Payload())
	if err != nil {
		return CartItemRow{}, err
	}

	row := CartItemRow{
		ID:             item.ID(),
		CustomerID:     item.CustomerID(),
		ServiceID:      item.ServiceID(),
		Capability:     item.Capability().String(),
		ProductID:      item.ProductID(),
		ProductName:    item.ProductName(),
		UnitPriceCents: money.ToCents(item.UnitPrice()),
		Currency:       item.Currency(),
		StartAt:        pgconv.TimeToPgtype(item.Start()),
		EndAt:          pgconv.TimePtrToPgtype(item.End()),
		Payload:        payload,
		CreatedAt:      pgconv.TimeToPgtype(item.CreatedAt()),
	}
	if h, ok := item.Hold(); ok {
		row.HoldID = pgconv.StringToPgtype(h.ID)
		row.HoldExpiresAt = pgconv.TimePtrToPgtype(h.Expiry)
	}
	return row, nil
}

func CartItemToDomain(row CartItemRow) (*cart.Item, error) {
	capability, err := catalog.NewCapability(row.Capability)
	if err != nil {
		return nil, err
	}
	payload, err := cart.UnmarshalPayload(capability, row.Payload)
	if err != nil {
		return nil, err
	}

	var hold *cart.Hold
	if row.HoldID.Valid && row.HoldID.String != "" {
		hold = &cart.Hold{ID: row.HoldID.String, Expiry: pgconv.TimePtrFromPgtype(row.HoldExpiresAt)}
	}

	return cart.ReconstructItem(cart.ReconstructParams{
		ID:          row.ID,
		CustomerID:  row.CustomerID,
		ServiceID:   row.ServiceID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		UnitPrice:   money.FromCents(row.UnitPriceCents),
		Currency:    row.Currency,
		Start:       pgconv.TimeFromPgtype(row.StartAt),
		End:         pgconv.TimePtrFromPgtype(row.EndAt),
		Hold:        hold,
		Payload:     payload,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
	}), nil
}
