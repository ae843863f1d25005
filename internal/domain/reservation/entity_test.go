//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/reservation"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)

func TestRateSplitCalculator(t *testing.T) {
	calc, err := reservation.NewRateSplitCalculator(decimal.RequireFromString("0.10"))
	require.NoError(t, err)

	tests := []struct {
		amount     string
		business   string
		commission string
	}{
		{amount: "200", business: "180", commission: "20"},
		{amount: "150", business: "135", commission: "15"},
		{amount: "33.33", business: "30.00", commission: "3.33"},
		{amount: "0.05", business: "0.05", commission: "0"},
		{amount: "99.99", business: "89.99", commission: "10.00"},
	}
	for _, tc := range tests {
		t.Run(tc.amount, func(t *testing.T) {
			s, err := calc.Split(decimal.RequireFromString(tc.amount))

			require.NoError(t, err)
			assert.True(t, s.Business().Equal(decimal.RequireFromString(tc.business)), "business %s", s.Business())
			assert.True(t, s.Commission().Equal(decimal.RequireFromString(tc.commission)), "commission %s", s.Commission())
			assert.True(t, s.Business().Add(s.Commission()).Equal(s.Amount()))
		})
	}

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := calc.Split(decimal.Zero)
		assert.True(t, errs.Is(err, reservation.ErrInvalidSplit))
	})

	t.Run("rate out of range", func(t *testing.T) {
		for _, rate := range []string{"-0.01", "1", "1.5"} {
			_, err := reservation.NewRateSplitCalculator(decimal.RequireFromString(rate))
			assert.True(t, errs.Is(err, reservation.ErrInvalidSplit), rate)
		}
	})
}

func TestNewReservation(t *testing.T) {
	calc, err := reservation.NewRateSplitCalculator(decimal.RequireFromString("0.10"))
	require.NoError(t, err)
	split, err := calc.Split(decimal.NewFromInt(200))
	require.NoError(t, err)

	params := func() reservation.NewParams {
		return reservation.NewParams{
			ServiceID:        uuid.New(),
			CustomerID:       uuid.New(),
			Capability:       catalog.CapabilityHotel,
			ProductID:        "room-101",
			ConfirmationCode: "CONF-1",
			Split:            split,
			CustomerAccount:  1001,
		}
	}

	t.Run("success: starts active with the split amounts", func(t *testing.T) {
		r, err := reservation.NewReservation(params(), now)

		require.NoError(t, err)
		assert.True(t, r.IsActive())
		assert.True(t, r.Amount().Equal(decimal.NewFromInt(200)))
		assert.True(t, r.AmountPaidToBusiness().Equal(decimal.NewFromInt(180)))
		assert.Equal(t, now, r.CreatedAt())
	})

	cases := []struct {
		name   string
		mutate func(*reservation.NewParams)
		errIs  error
	}{
		{name: "no confirmation", mutate: func(p *reservation.NewParams) { p.ConfirmationCode = "" }, errIs: reservation.ErrInvalidReservation},
		{name: "no customer", mutate: func(p *reservation.NewParams) { p.CustomerID = uuid.Nil }, errIs: reservation.ErrInvalidReservation},
		{name: "no account", mutate: func(p *reservation.NewParams) { p.CustomerAccount = 0 }, errIs: reservation.ErrInvalidReservation},
	}
	for _, c := range cases {
		t.Run("failure: "+c.name, func(t *testing.T) {
			p := params()
			c.mutate(&p)

			r, err := reservation.NewReservation(p, now)

			require.Nil(t, r)
			assert.True(t, errs.Is(err, c.errIs))
		})
	}

	t.Run("success: provider reservation id alone is enough", func(t *testing.T) {
		p := params()
		p.ConfirmationCode = ""
		p.ProviderReservationID = "PR-9"

		_, err := reservation.NewReservation(p, now)
		require.NoError(t, err)
	})
}

func TestReservation_Cancel(t *testing.T) {
	r := builder.NewReservationBuilder().Build()

	require.NoError(t, r.Cancel(now))
	assert.False(t, r.IsActive())
	assert.Equal(t, now, r.UpdatedAt())
	assert.True(t, r.Amount().Equal(decimal.NewFromInt(200)))

	assert.ErrorIs(t, r.Cancel(now.Add(time.Minute)), reservation.ErrAlreadyCancelled)
	assert.Equal(t, now, r.UpdatedAt())
}
