//go:build unit

package queries_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/pkg/config"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/queries"
	"booking-orchestrator/internal/usecase/shared"
	"booking-orchestrator/tests/common/builder"
	queriesmock "booking-orchestrator/tests/mock/queries"
	sharedmock "booking-orchestrator/tests/mock/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)

type searchFixture struct {
	repo     *queriesmock.MockCatalogRepo
	gateways *sharedmock.MockProviderGateways
	gw       *sharedmock.MockProviderGateway
	clock    *clock.MockClock
	queries  queries.SearchQueries
}

func newSearchFixture(t *testing.T) *searchFixture {
	ctrl := gomock.NewController(t)
	f := &searchFixture{
		repo:     queriesmock.NewMockCatalogRepo(ctrl),
		gateways: sharedmock.NewMockProviderGateways(ctrl),
		gw:       sharedmock.NewMockProviderGateway(ctrl),
		clock:    clock.NewMockClock(testNow),
	}
	cfg := config.NewTestConfig().Provider
	cfg.SearchCacheTTL = 30 * time.Second
	f.queries = queries.NewSearchQueries(f.repo, f.gateways, f.clock, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.gateways.EXPECT().For(gomock.Any()).Return(f.gw, nil).AnyTimes()
	return f
}

func hotel(name string) *catalog.Service {
	return builder.NewServiceBuilder().
		With(func(b *builder.ServiceBuilder) { b.Name = name }).
		WithREST("http://" + name + ".test").
		MustBuild()
}

func product(id string) shared.Product {
	return shared.Product{ProductID: id, Name: id, UnitPrice: decimal.NewFromInt(120), Currency: "USD", Available: 3}
}

func TestSearchQueries_Search(t *testing.T) {
	filters := shared.SearchFilters{Location: "Lisbon", PartySize: 2}

	t.Run("success: merges providers in catalog order and reports failures", func(t *testing.T) {
		f := newSearchFixture(t)
		first, broken, third := hotel("alpha"), hotel("broken"), hotel("gamma")
		unsearchable := builder.NewServiceBuilder().MustBuild()

		f.repo.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return([]*catalog.Service{first, broken, unsearchable, third}, nil)
		f.gw.EXPECT().Search(gomock.Any(), first, filters).Return([]shared.Product{product("a-1"), product("a-2")}, nil)
		f.gw.EXPECT().Search(gomock.Any(), broken, filters).Return(nil, shared.ErrProviderUnavailable)
		f.gw.EXPECT().Search(gomock.Any(), third, filters).Return([]shared.Product{product("c-1")}, nil)

		result, err := f.queries.Search(t.Context(), "hotel", filters)

		require.NoError(t, err)
		assert.Equal(t, "hotel", result.Capability)
		assert.Equal(t, 3, result.Meta.ProvidersQueried)
		assert.Equal(t, 2, result.Meta.ProvidersSucceeded)
		assert.Equal(t, 1, result.Meta.ProvidersFailed)
		assert.Equal(t, []string{"broken"}, result.Meta.FailedProviders)
		assert.False(t, result.Meta.CacheHit)

		ids := make([]string, 0, len(result.Products))
		for _, p := range result.Products {
			ids = append(ids, p.ProductID)
		}
		assert.Equal(t, []string{"a-1", "a-2", "c-1"}, ids)
		assert.Equal(t, "alpha", result.Products[0].ServiceName)
		assert.Equal(t, first.ID(), result.Products[0].ServiceID)
	})

	t.Run("success: repeated search within the ttl is served from cache", func(t *testing.T) {
		f := newSearchFixture(t)
		svc := hotel("alpha")

		f.repo.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return([]*catalog.Service{svc}, nil).Times(2)
		f.gw.EXPECT().Search(gomock.Any(), svc, filters).Return([]shared.Product{product("a-1")}, nil).Times(2)

		_, err := f.queries.Search(t.Context(), "hotel", filters)
		require.NoError(t, err)

		cached, err := f.queries.Search(t.Context(), "hotel", filters)
		require.NoError(t, err)
		assert.True(t, cached.Meta.CacheHit)
		assert.Len(t, cached.Products, 1)

		f.clock.Add(31 * time.Second)
		fresh, err := f.queries.Search(t.Context(), "hotel", filters)
		require.NoError(t, err)
		assert.False(t, fresh.Meta.CacheHit)
	})

	t.Run("success: total outage is not cached", func(t *testing.T) {
		f := newSearchFixture(t)
		svc := hotel("alpha")

		f.repo.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return([]*catalog.Service{svc}, nil).Times(2)
		f.gw.EXPECT().Search(gomock.Any(), svc, filters).Return(nil, shared.ErrProviderUnavailable)
		f.gw.EXPECT().Search(gomock.Any(), svc, filters).Return([]shared.Product{product("a-1")}, nil)

		down, err := f.queries.Search(t.Context(), "hotel", filters)
		require.NoError(t, err)
		assert.Empty(t, down.Products)
		assert.Equal(t, 1, down.Meta.ProvidersFailed)

		up, err := f.queries.Search(t.Context(), "hotel", filters)
		require.NoError(t, err)
		assert.False(t, up.Meta.CacheHit)
		assert.Len(t, up.Products, 1)
	})

	t.Run("failure: unknown capability", func(t *testing.T) {
		f := newSearchFixture(t)

		_, err := f.queries.Search(t.Context(), "spaceship", filters)

		require.Error(t, err)
		assert.True(t, errs.Is(err, queries.ErrUnknownCapability))
	})
}
