package catalog

import (
	"strings"

	"booking-orchestrator/internal/pkg/errs"

	"github.com/google/uuid"
)

// ProtocolDetail is one (service, protocol) endpoint set.
// An operation is declared supported when it has an endpoint path and is not explicitly disabled.
type ProtocolDetail struct {
	protocol    Protocol
	baseURI     string
	endpoints   map[Operation]string
	unsupported map[Operation]bool
}

func NewProtocolDetail(protocol Protocol, baseURI string, endpoints map[Operation]string, unsupported []Operation) (ProtocolDetail, error) {
	if protocol != ProtocolREST && protocol != ProtocolLegacy {
		return ProtocolDetail{}, errs.Mark(errs.Newf("unknown protocol %q", protocol), ErrInvalidProtocol)
	}
	if strings.TrimSpace(baseURI) == "" {
		return ProtocolDetail{}, errs.Mark(errs.New("base uri is required"), ErrInvalidService)
	}

	eps := make(map[Operation]string, len(endpoints))
	for op, path := range endpoints {
		if _, err := NewOperation(string(op)); err != nil {
			return ProtocolDetail{}, err
		}
		if p := strings.TrimSpace(path); p != "" {
			eps[op] = p
		}
	}

	off := make(map[Operation]bool, len(unsupported))
	for _, op := range unsupported {
		off[op] = true
	}

	return ProtocolDetail{
		protocol:    protocol,
		baseURI:     baseURI,
		endpoints:   eps,
		unsupported: off,
	}, nil
}

func (d ProtocolDetail) Protocol() Protocol {
	return d.protocol
}

func (d ProtocolDetail) BaseURI() string {
	return d.baseURI
}

func (d ProtocolDetail) Endpoint(op Operation) string {
	return d.endpoints[op]
}

func (d ProtocolDetail) Endpoints() map[Operation]string {
	out := make(map[Operation]string, len(d.endpoints))
	for k, v := range d.endpoints {
		out[k] = v
	}
	return out
}

func (d ProtocolDetail) Unsupported() []Operation {
	out := make([]Operation, 0, len(d.unsupported))
	for _, op := range operations {
		if d.unsupported[op] {
			out = append(out, op)
		}
	}
	return out
}

func (d ProtocolDetail) Supports(op Operation) bool {
	return d.endpoints[op] != "" && !d.unsupported[op]
}

// BuildURI joins the base address and the operation path without doubling the slash
func (d ProtocolDetail) BuildURI(op Operation) string {
	path := d.endpoints[op]
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(d.baseURI, "/") + path
}

type Service struct {
	id                uuid.UUID
	capability        Capability
	name              string
	settlementAccount int64
	active            bool
	details           []ProtocolDetail
}

func NewService(id uuid.UUID, capability Capability, name string, settlementAccount int64, active bool, details []ProtocolDetail) (*Service, error) {
	if id == uuid.Nil {
		return nil, errs.Mark(errs.New("service id is required"), ErrInvalidService)
	}
	if _, err := NewCapability(string(capability)); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.Mark(errs.New("service name is required"), ErrInvalidService)
	}
	if settlementAccount <= 0 {
		return nil, errs.Mark(errs.New("settlement account must be positive"), ErrInvalidService)
	}

	seen := make(map[Protocol]bool, len(details))
	for _, d := range details {
		if seen[d.protocol] {
			return nil, errs.Mark(errs.Newf("duplicate %s detail", d.protocol), ErrInvalidService)
		}
		seen[d.protocol] = true
	}

	return &Service{
		id:                id,
		capability:        capability,
		name:              name,
		settlementAccount: settlementAccount,
		active:            active,
		details:           append([]ProtocolDetail(nil), details...),
	}, nil
}

func (s *Service) ID() uuid.UUID {
	return s.id
}

func (s *Service) Capability() Capability {
	return s.capability
}

func (s *Service) Name() string {
	return s.name
}

func (s *Service) SettlementAccount() int64 {
	return s.settlementAccount
}

func (s *Service) IsActive() bool {
	return s.active
}

func (s *Service) Details() []ProtocolDetail {
	return append([]ProtocolDetail(nil), s.details...)
}

func (s *Service) Detail(p Protocol) (ProtocolDetail, bool) {
	for _, d := range s.details {
		if d.protocol == p {
			return d, true
		}
	}
	return ProtocolDetail{}, false
}

// Searchable requires at least one detail able to serve search
func (s *Service) Searchable() bool {
	if !s.active {
		return false
	}
	for _, d := range s.details {
		if d.Supports(OpSearch) {
			return true
		}
	}
	return false
}

// CancellationDetail returns the REST detail when it exposes a cancel endpoint.
// Cancellation is only wired through REST.
func (s *Service) CancellationDetail() (ProtocolDetail, bool) {
	d, ok := s.Detail(ProtocolREST)
	if !ok || !d.Supports(OpCancelReservation) {
		return ProtocolDetail{}, false
	}
	return d, true
}
