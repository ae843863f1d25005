package readstore

import (
	"context"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/infra/repository/converter"
	"booking-orchestrator/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CatalogStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
	ListActive(ctx context.Context, capability *catalog.Capability) ([]*catalog.Service, error)
}

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(q db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: q}
}

const serviceColumns = `id, capability, name, settlement_account, active`

func (r *CatalogReadStore) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	var row converter.ServiceRow
	err := r.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id).
		Scan(&row.ID, &row.Capability, &row.Name, &row.SettlementAccount, &row.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}

	details, err := r.details(ctx, []uuid.UUID{row.ID})
	if err != nil {
		return nil, err
	}
	svc, err := converter.ServiceToDomain(row, details[row.ID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode service", err)
	}
	return svc, nil
}

// ListActive returns active services, optionally narrowed to one capability, ordered by name
func (r *CatalogReadStore) ListActive(ctx context.Context, capability *catalog.Capability) ([]*catalog.Service, error) {
	var filter *string
	if capability != nil {
		c := capability.String()
		filter = &c
	}

	rows, err := r.db.Query(ctx, `
SELECT `+serviceColumns+`
FROM services
WHERE active AND ($1::text IS NULL OR capability = $1)
ORDER BY name, id`, filter)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	var (
		svcRows []converter.ServiceRow
		ids     []uuid.UUID
	)
	for rows.Next() {
		var row converter.ServiceRow
		if err := rows.Scan(&row.ID, &row.Capability, &row.Name, &row.SettlementAccount, &row.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service", err)
		}
		svcRows = append(svcRows, row)
		ids = append(ids, row.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate services", err)
	}
	if len(svcRows) == 0 {
		return []*catalog.Service{}, nil
	}

	details, err := r.details(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*catalog.Service, 0, len(svcRows))
	for _, row := range svcRows {
		svc, err := converter.ServiceToDomain(row, details[row.ID])
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode service", err)
		}
		out = append(out, svc)
	}
	return out, nil
}

func (r *CatalogReadStore) details(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]converter.ProtocolDetailRow, error) {
	rows, err := r.db.Query(ctx, `
SELECT service_id, protocol, base_uri, endpoints, unsupported
FROM service_protocol_details
WHERE service_id = ANY($1)
ORDER BY service_id, protocol`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load protocol details", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]converter.ProtocolDetailRow, len(ids))
	for rows.Next() {
		var d converter.ProtocolDetailRow
		if err := rows.Scan(&d.ServiceID, &d.Protocol, &d.BaseURI, &d.Endpoints, &d.Unsupported); err != nil {
			return nil, infra.WrapRepoErr("failed to scan protocol detail", err)
		}
		out[d.ServiceID] = append(out[d.ServiceID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate protocol details", err)
	}
	return out, nil
}
