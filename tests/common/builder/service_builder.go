//go:build unit || e2e

package builder

import (
	"booking-orchestrator/internal/domain/catalog"

	"github.com/google/uuid"
)

type DetailSpec struct {
	Protocol    catalog.Protocol
	BaseURI     string
	Endpoints   map[catalog.Operation]string
	Unsupported []catalog.Operation
}

type ServiceBuilder struct {
	ID                uuid.UUID
	Capability        catalog.Capability
	Name              string
	SettlementAccount int64
	Active            bool
	Details           []DetailSpec
}

func NewServiceBuilder() *ServiceBuilder {
	return &ServiceBuilder{
		ID:                uuid.New(),
		Capability:        catalog.CapabilityHotel,
		Name:              "Test Provider",
		SettlementAccount: 2002,
		Active:            true,
	}
}

// DefaultEndpoints maps every operation to /<operation>
func DefaultEndpoints() map[catalog.Operation]string {
	eps := make(map[catalog.Operation]string)
	for _, op := range catalog.Operations() {
		eps[op] = "/" + op.String()
	}
	return eps
}

func (b *ServiceBuilder) With(mutate func(*ServiceBuilder)) *ServiceBuilder {
	mutate(b)
	return b
}

func (b *ServiceBuilder) WithCapability(c catalog.Capability) *ServiceBuilder {
	b.Capability = c
	return b
}

func (b *ServiceBuilder) WithREST(baseURI string, unsupported ...catalog.Operation) *ServiceBuilder {
	b.Details = append(b.Details, DetailSpec{
		Protocol:    catalog.ProtocolREST,
		BaseURI:     baseURI,
		Endpoints:   DefaultEndpoints(),
		Unsupported: unsupported,
	})
	return b
}

func (b *ServiceBuilder) WithLegacy(baseURI string, unsupported ...catalog.Operation) *ServiceBuilder {
	b.Details = append(b.Details, DetailSpec{
		Protocol:    catalog.ProtocolLegacy,
		BaseURI:     baseURI,
		Endpoints:   DefaultEndpoints(),
		Unsupported: unsupported,
	})
	return b
}

func (b *ServiceBuilder) BuildDomain() (*catalog.Service, error) {
	details := make([]catalog.ProtocolDetail, 0, len(b.Details))
	for _, d := range b.Details {
		pd, err := catalog.NewProtocolDetail(d.Protocol, d.BaseURI, d.Endpoints, d.Unsupported)
		if err != nil {
			return nil, err
		}
		details = append(details, pd)
	}
	return catalog.NewService(b.ID, b.Capability, b.Name, b.SettlementAccount, b.Active, details)
}

// MustBuild panics on invalid input; only for fixtures that are known to be valid
func (b *ServiceBuilder) MustBuild() *catalog.Service {
	svc, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return svc
}
