package shared

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=bank.go -destination=../../../tests/mock/shared/bank_mock.go -package=sharedmock

// Transfer moves Amount between two bank accounts. IdempotencyKey lets the bank drop replays.
type Transfer struct {
	From           int64
	To             int64
	Amount         decimal.Decimal
	IdempotencyKey string
	Reference      string
}

// Bank reports only success; the reason of a failed transfer is logged by the implementation
type Bank interface {
	Transfer(ctx context.Context, t Transfer) bool
}
