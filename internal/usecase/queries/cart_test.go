//go:build unit

package queries_test

import (
	"testing"
	"time"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/usecase/queries"
	"booking-orchestrator/tests/common/builder"
	queriesmock "booking-orchestrator/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCartQueries_Get(t *testing.T) {
	customerID := uuid.New()
	live := testNow.Add(5 * time.Minute)
	gone := testNow.Add(-time.Minute)

	held := builder.NewCartItemBuilder().WithHold("H-1", &live).Build()
	expired := builder.NewCartItemBuilder().AsTable().WithPrice("30").WithHold("H-2", &gone).Build()
	unheld := builder.NewCartItemBuilder().AsFlight().WithPrice("150").Build()

	repo := queriesmock.NewMockCartRepo(gomock.NewController(t))
	repo.EXPECT().ListByCustomer(gomock.Any(), customerID).Return([]*cart.Item{held, expired, unheld}, nil)

	view, err := queries.NewCartQueries(repo, clock.NewMockClock(testNow)).Get(t.Context(), customerID)

	require.NoError(t, err)
	require.Len(t, view.Items, 3)
	assert.True(t, view.Total.Equal(decimal.NewFromInt(380)))
	assert.True(t, view.BookableTotal.Equal(decimal.NewFromInt(200)))

	assert.True(t, view.Items[0].Bookable)
	require.NotNil(t, view.Items[0].HoldID)
	assert.Equal(t, "H-1", *view.Items[0].HoldID)
	assert.Equal(t, &live, view.Items[0].HoldExpiresAt)

	assert.False(t, view.Items[1].Bookable)
	assert.Equal(t, catalog.CapabilityTable.String(), view.Items[1].Capability)

	assert.False(t, view.Items[2].Bookable)
	assert.Nil(t, view.Items[2].HoldID)
	assert.Equal(t, 1, view.Items[2].Quantity)
}

func TestCatalogQueries_ListServices(t *testing.T) {
	rest := builder.NewServiceBuilder().WithREST("http://rest.test").MustBuild()
	legacy := builder.NewServiceBuilder().WithLegacy("http://legacy.test").MustBuild()

	repo := queriesmock.NewMockCatalogRepo(gomock.NewController(t))
	repo.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return([]*catalog.Service{rest, legacy}, nil)

	views, err := queries.NewCatalogQueries(repo).ListServices(t.Context(), "hotel")

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, []string{"REST"}, views[0].Protocols)
	assert.True(t, views[0].Cancellable)
	assert.True(t, views[1].Searchable)
	assert.False(t, views[1].Cancellable)
}
