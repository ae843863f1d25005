package converter

import (
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/reservation"
	"booking-orchestrator/internal/pkg/money"
	"booking-orchestrator/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRow struct {
	ID                        uuid.UUID
	ServiceID                 uuid.UUID
	CustomerID                uuid.UUID
	Capability                string
	ProductID                 string
	ProductName               string
	ConfirmationCode          string
	ProviderReservationID     string
	InvoiceURL                pgtype.Text
	Active                    bool
	AmountPaidToBusinessCents int64
	PlatformCommissionCents   int64
	CustomerAccount           int64
	CreatedAt                 pgtype.Timestamptz
	UpdatedAt                 pgtype.Timestamptz
}

func ReservationToRow(r *reservation.Reservation) ReservationRow {
	return ReservationRow{
		ID:                        r.ID(),
		ServiceID:                 r.ServiceID(),
		CustomerID:                r.CustomerID(),
		Capability:                r.Capability().String(),
		ProductID:                 r.ProductID(),
		ProductName:               r.ProductName(),
		ConfirmationCode:          r.ConfirmationCode(),
		ProviderReservationID:     r.ProviderReservationID(),
		InvoiceURL:                pgconv.StringToPgtype(r.InvoiceURL()),
		Active:                    r.IsActive(),
		AmountPaidToBusinessCents: money.ToCents(r.AmountPaidToBusiness()),
		PlatformCommissionCents:   money.ToCents(r.PlatformCommission()),
		CustomerAccount:           r.CustomerAccount(),
		CreatedAt:                 pgconv.TimeToPgtype(r.CreatedAt()),
		UpdatedAt:                 pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func ReservationToDomain(row ReservationRow) *reservation.Reservation {
	return reservation.ReconstructReservation(reservation.ReconstructParams{
		ID:                    row.ID,
		ServiceID:             row.ServiceID,
		CustomerID:            row.CustomerID,
		Capability:            catalog.Capability(row.Capability),
		ProductID:             row.ProductID,
		ProductName:           row.ProductName,
		ConfirmationCode:      row.ConfirmationCode,
		ProviderReservationID: row.ProviderReservationID,
		InvoiceURL:            pgconv.StringFromPgtype(row.InvoiceURL),
		Active:                row.Active,
		AmountPaidToBusiness:  money.FromCents(row.AmountPaidToBusinessCents),
		PlatformCommission:    money.FromCents(row.PlatformCommissionCents),
		CustomerAccount:       row.CustomerAccount,
		CreatedAt:             pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:             pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

// Values lists the row in the column order of ReservationColumns
func (r ReservationRow) Values() []any {
	return []any{
		r.ID, r.ServiceID, r.CustomerID, r.Capability, r.ProductID, r.ProductName,
		r.ConfirmationCode, r.ProviderReservationID, r.InvoiceURL, r.Active,
		r.AmountPaidToBusinessCents, r.PlatformCommissionCents, r.CustomerAccount,
		r.CreatedAt, r.UpdatedAt,
	}
}

// ScanTargets lists the destinations in the column order of ReservationColumns
func (r *ReservationRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.ServiceID, &r.CustomerID, &r.Capability, &r.ProductID, &r.ProductName,
		&r.ConfirmationCode, &r.ProviderReservationID, &r.InvoiceURL, &r.Active,
		&r.AmountPaidToBusinessCents, &r.PlatformCommissionCents, &r.CustomerAccount,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

const ReservationColumns = `id, service_id, customer_id, capability, product_id, product_name,
	confirmation_code, provider_reservation_id, invoice_url, active,
	amount_paid_to_business_cents, platform_commission_cents, customer_account,
	created_at, updated_at`
