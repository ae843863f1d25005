package money

import (
	"github.com/shopspring/decimal"
)

const scale = 2

var hundred = decimal.NewFromInt(100)

// Round rounds half away from zero to whole cents
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(scale)
}

func ToCents(d decimal.Decimal) int64 {
	return Round(d).Mul(hundred).IntPart()
}

func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -scale)
}

func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}

// Parse accepts "150", "150.5" or "150.50"; more than two decimals is rejected
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !d.Equal(Round(d)) {
		return decimal.Decimal{}, errTooPrecise
	}
	return d, nil
}
