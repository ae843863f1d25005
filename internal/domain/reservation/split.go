package reservation

import (
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/pkg/money"

	"github.com/shopspring/decimal"
)

// Split divides an item amount between the provider payout and the retained commission.
// Commission is derived as amount - business so the two always add back to the amount.
type Split struct {
	amount     decimal.Decimal
	business   decimal.Decimal
	commission decimal.Decimal
}

func (s Split) Amount() decimal.Decimal     { return s.amount }
func (s Split) Business() decimal.Decimal   { return s.business }
func (s Split) Commission() decimal.Decimal { return s.commission }

// SplitCalculator computes the commission split for an item amount
type SplitCalculator interface {
	Split(amount decimal.Decimal) (Split, error)
}

type RateSplitCalculator struct {
	commissionRate decimal.Decimal
}

func NewRateSplitCalculator(commissionRate decimal.Decimal) (*RateSplitCalculator, error) {
	if commissionRate.IsNegative() || commissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, errs.Mark(errs.Newf("commission rate %s out of range [0,1)", commissionRate), ErrInvalidSplit)
	}
	return &RateSplitCalculator{commissionRate: commissionRate}, nil
}

func (c *RateSplitCalculator) Split(amount decimal.Decimal) (Split, error) {
	if !money.IsPositive(amount) {
		return Split{}, errs.Mark(errs.Newf("amount %s must be positive", amount), ErrInvalidSplit)
	}
	amount = money.Round(amount)
	business := money.Round(amount.Mul(decimal.NewFromInt(1).Sub(c.commissionRate)))
	return Split{
		amount:     amount,
		business:   business,
		commission: amount.Sub(business),
	}, nil
}

// ReconstructSplit restores a persisted split and checks the share invariant
func ReconstructSplit(business, commission decimal.Decimal) Split {
	return Split{
		amount:     business.Add(commission),
		business:   business,
		commission: commission,
	}
}
