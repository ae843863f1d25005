package repository

import (
	"context"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/infra/repository/converter"
)

type ServiceRepository struct{}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{}
}

// Save upserts the service and replaces its protocol details
func (r *ServiceRepository) Save(ctx context.Context, q db.DBTX, svc *catalog.Service) error {
	row := converter.ServiceToRow(svc)
	_, err := q.Exec(ctx, `
INSERT INTO services (id, capability, name, settlement_account, active)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	capability = EXCLUDED.capability,
	name = EXCLUDED.name,
	settlement_account = EXCLUDED.settlement_account,
	active = EXCLUDED.active,
	updated_at = NOW()`,
		row.ID, row.Capability, row.Name, row.SettlementAccount, row.Active,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save service", err)
	}

	if _, err := q.Exec(ctx, `DELETE FROM service_protocol_details WHERE service_id = $1`, row.ID); err != nil {
		return infra.WrapRepoErr("failed to clear protocol details", err)
	}

	for _, d := range svc.Details() {
		dr, err := converter.DetailToRow(row.ID, d)
		if err != nil {
			return infra.WrapRepoErr("failed to encode protocol detail", err)
		}
		_, err = q.Exec(ctx, `
INSERT INTO service_protocol_details (service_id, protocol, base_uri, endpoints, unsupported)
VALUES ($1, $2, $3, $4, $5)`,
			dr.ServiceID, dr.Protocol, dr.BaseURI, dr.Endpoints, dr.Unsupported,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to save protocol detail", err)
		}
	}
	return nil
}
