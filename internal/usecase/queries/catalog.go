package queries

import (
	"context"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/errs"
)

//go:generate mockgen -source=catalog.go -destination=../../../tests/mock/queries/catalog_mock.go -package=queriesmock

type CatalogQueries interface {
	ListServices(ctx context.Context, capability string) ([]*ServiceView, error)
}

type catalogQueriesImpl struct {
	repo CatalogRepo
}

func NewCatalogQueries(repo CatalogRepo) CatalogQueries {
	return &catalogQueriesImpl{repo: repo}
}

// ListServices lists active services; an empty capability lists all of them
func (q *catalogQueriesImpl) ListServices(ctx context.Context, capability string) ([]*ServiceView, error) {
	var filter *catalog.Capability
	if capability != "" {
		c, err := catalog.NewCapability(capability)
		if err != nil {
			return nil, errs.Mark(err, ErrUnknownCapability)
		}
		filter = &c
	}

	services, err := q.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "list services")
	}

	out := make([]*ServiceView, 0, len(services))
	for _, svc := range services {
		_, cancellable := svc.CancellationDetail()
		protocols := make([]string, 0, len(svc.Details()))
		for _, d := range svc.Details() {
			protocols = append(protocols, d.Protocol().String())
		}
		out = append(out, &ServiceView{
			ID:          svc.ID(),
			Capability:  svc.Capability().String(),
			Name:        svc.Name(),
			Protocols:   protocols,
			Searchable:  svc.Searchable(),
			Cancellable: cancellable,
		})
	}
	return out, nil
}
