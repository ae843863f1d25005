package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/pkg/ttlcache"
	"booking-orchestrator/internal/usecase/shared"
)

//go:generate mockgen -source=search.go -destination=../../../tests/mock/queries/search_mock.go -package=queriesmock

type SearchQueries interface {
	Search(ctx context.Context, capability string, filters shared.SearchFilters) (*SearchResult, error)
}

type CatalogRepo interface {
	ListActive(ctx context.Context, capability *catalog.Capability) ([]*catalog.Service, error)
}

type searchQueriesImpl struct {
	catalog  CatalogRepo
	gateways shared.ProviderGateways
	cache    *ttlcache.Cache[*SearchResult]
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewSearchQueries(repo CatalogRepo, gateways shared.ProviderGateways, clk clock.Clock, cfg config.ProviderConfig, logger *slog.Logger) SearchQueries {
	return &searchQueriesImpl{
		catalog:  repo,
		gateways: gateways,
		cache:    ttlcache.New[*SearchResult](clk),
		cacheTTL: cfg.SearchCacheTTL,
		logger:   logger,
	}
}

type searchOutcome struct {
	svc      *catalog.Service
	products []shared.Product
	err      error
}

// Search queries every active, searchable service of the capability concurrently.
// A failing provider contributes zero results and is listed in the metadata.
func (q *searchQueriesImpl) Search(ctx context.Context, capability string, filters shared.SearchFilters) (*SearchResult, error) {
	c, err := catalog.NewCapability(capability)
	if err != nil {
		return nil, errs.Mark(err, ErrUnknownCapability)
	}

	key := searchCacheKey(c, filters)
	if cached, ok := q.cache.Get(key); ok {
		hit := *cached
		hit.Meta.CacheHit = true
		return &hit, nil
	}

	gw, err := q.gateways.For(c)
	if err != nil {
		return nil, errs.Mark(err, ErrUnknownCapability)
	}
	services, err := q.catalog.ListActive(ctx, &c)
	if err != nil {
		return nil, errs.Wrap(err, "list searchable services")
	}

	var targets []*catalog.Service
	for _, svc := range services {
		if svc.Searchable() {
			targets = append(targets, svc)
		}
	}

	outcomes := q.fanOut(ctx, gw, targets, filters)

	result := &SearchResult{
		Capability: c.String(),
		Products:   []ProductView{},
		Meta:       SearchMeta{ProvidersQueried: len(targets), FailedProviders: []string{}},
	}
	for _, o := range outcomes {
		if o.err != nil {
			result.Meta.ProvidersFailed++
			result.Meta.FailedProviders = append(result.Meta.FailedProviders, o.svc.Name())
			q.logger.WarnContext(ctx, "provider search failed",
				slog.String("service_id", o.svc.ID().String()),
				slog.String("error", o.err.Error()),
			)
			continue
		}
		result.Meta.ProvidersSucceeded++
		for _, p := range o.products {
			result.Products = append(result.Products, productView(o.svc, p))
		}
	}

	// A full outage is not cached so the next request retries the providers
	if result.Meta.ProvidersQueried == 0 || result.Meta.ProvidersSucceeded > 0 {
		q.cache.Set(key, result, q.cacheTTL)
	}
	return result, nil
}

// fanOut keeps the catalog order in its output regardless of completion order
func (q *searchQueriesImpl) fanOut(ctx context.Context, gw shared.ProviderGateway, targets []*catalog.Service, filters shared.SearchFilters) []searchOutcome {
	outcomes := make([]searchOutcome, len(targets))
	done := make(chan struct{}, len(targets))

	for i, svc := range targets {
		go func() {
			defer func() { done <- struct{}{} }()
			products, err := gw.Search(ctx, svc, filters)
			outcomes[i] = searchOutcome{svc: svc, products: products, err: err}
		}()
	}
	for range targets {
		<-done
	}
	return outcomes
}

func searchCacheKey(c catalog.Capability, filters shared.SearchFilters) string {
	raw, _ := json.Marshal(filters)
	return c.String() + "|" + string(raw)
}

func productView(svc *catalog.Service, p shared.Product) ProductView {
	name := p.ServiceName
	if name == "" {
		name = svc.Name()
	}
	return ProductView{
		ServiceID:   svc.ID(),
		ServiceName: name,
		Capability:  svc.Capability().String(),
		ProductID:   p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Location:    p.Location,
		StartsAt:    p.StartsAt,
		UnitPrice:   p.UnitPrice,
		Currency:    p.Currency,
		Available:   p.Available,
		Attributes:  p.Attributes,
	}
}
