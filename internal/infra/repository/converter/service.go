package converter

import (
	"encoding/json"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/errs"

	"github.com/google/uuid"
)

type ServiceRow struct {
	ID                uuid.UUID
	Capability        string
	Name              string
	SettlementAccount int64
	Active            bool
}

type ProtocolDetailRow struct {
	ServiceID   uuid.UUID
	Protocol    string
	BaseURI     string
	Endpoints   []byte
	Unsupported []string
}

func ServiceToRow(svc *catalog.Service) ServiceRow {
	return ServiceRow{
		ID:                svc.ID(),
		Capability:        svc.Capability().String(),
		Name:              svc.Name(),
		SettlementAccount: svc.SettlementAccount(),
		Active:            svc.IsActive(),
	}
}

func DetailToRow(serviceID uuid.UUID, d catalog.ProtocolDetail) (ProtocolDetailRow, error) {
	endpoints := make(map[string]string)
	for op, path := range d.Endpoints() {
		endpoints[op.String()] = path
	}
	raw, err := json.Marshal(endpoints)
	if err != nil {
		return ProtocolDetailRow{}, errs.Wrap(err, "encode endpoints")
	}

	unsupported := make([]string, 0, len(d.Unsupported()))
	for _, op := range d.Unsupported() {
		unsupported = append(unsupported, op.String())
	}

	return ProtocolDetailRow{
		ServiceID:   serviceID,
		Protocol:    d.Protocol().String(),
		BaseURI:     d.BaseURI(),
		Endpoints:   raw,
		Unsupported: unsupported,
	}, nil
}

func ServiceToDomain(row ServiceRow, details []ProtocolDetailRow) (*catalog.Service, error) {
	capability, err := catalog.NewCapability(row.Capability)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.ProtocolDetail, 0, len(details))
	for _, d := range details {
		detail, err := detailToDomain(d)
		if err != nil {
			return nil, errs.Wrapf(err, "service %s", row.ID)
		}
		out = append(out, detail)
	}

	return catalog.NewService(row.ID, capability, row.Name, row.SettlementAccount, row.Active, out)
}

func detailToDomain(row ProtocolDetailRow) (catalog.ProtocolDetail, error) {
	protocol, err := catalog.NewProtocol(row.Protocol)
	if err != nil {
		return catalog.ProtocolDetail{}, err
	}

	var raw map[string]string
	if len(row.Endpoints) > 0 {
		if err := json.Unmarshal(row.Endpoints, &raw); err != nil {
			return catalog.ProtocolDetail{}, errs.Wrap(err, "decode endpoints")
		}
	}
	endpoints := make(map[catalog.Operation]string, len(raw))
	for k, v := range raw {
		op, err := catalog.NewOperation(k)
		if err != nil {
			return catalog.ProtocolDetail{}, err
		}
		endpoints[op] = v
	}

	unsupported := make([]catalog.Operation, 0, len(row.Unsupported))
	for _, s := range row.Unsupported {
		op, err := catalog.NewOperation(s)
		if err != nil {
			return catalog.ProtocolDetail{}, err
		}
		unsupported = append(unsupported, op)
	}

	return catalog.NewProtocolDetail(protocol, row.BaseURI, endpoints, unsupported)
}
