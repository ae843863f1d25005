package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	checkoutEndpoint = "POST /api/checkout"
	idempotencyTTL   = 24 * time.Hour
)

// idempotencyClaim is the processing row owned by the running checkout.
// A zero claim (no key supplied) turns every method into a no-op.
type idempotencyClaim struct {
	key        uuid.UUID
	customerID uuid.UUID
}

func (c idempotencyClaim) active() bool {
	return c.key != uuid.Nil
}

func checkoutRequestHash(in CheckoutInput) string {
	sum := sha256.Sum256([]byte(in.CustomerID.String() + "|" + strconv.FormatInt(in.CustomerAccount, 10)))
	return hex.EncodeToString(sum[:])
}

// claimIdempotencyKey inserts the processing row, or resolves an existing one into a
// replayed result, an in-progress conflict or a takeover of an expired claim.
func (s *CheckoutSaga) claimIdempotencyKey(ctx context.Context, in CheckoutInput) (idempotencyClaim, *CheckoutResult, error) {
	if in.IdempotencyKey == uuid.Nil {
		return idempotencyClaim{}, nil, nil
	}
	claim := idempotencyClaim{key: in.IdempotencyKey, customerID: in.CustomerID}
	hash := checkoutRequestHash(in)
	now := s.clock.Now()

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().TryInsert(ctx, tx.DB(), claim.key, claim.customerID, checkoutEndpoint, hash, now.Add(idempotencyTTL))
	})
	if err == nil {
		return claim, nil, nil
	}
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return idempotencyClaim{}, nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	rec, err := s.uow.CommandReads().IdempotencyByKey(ctx, claim.key, claim.customerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// released by a concurrent abort between the insert and the read
			return idempotencyClaim{}, nil, ErrCheckoutInProgress
		}
		return idempotencyClaim{}, nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if rec.RequestHash != hash || rec.Endpoint != checkoutEndpoint {
		return idempotencyClaim{}, nil, ErrIdempotencyKeyReused
	}

	if rec.Status == shared.IdempotencyCompleted {
		var replay CheckoutResult
		if err := json.Unmarshal(rec.ResponseBody, &replay); err != nil {
			return idempotencyClaim{}, nil, errs.Mark(errs.Wrap(err, "decode stored checkout result"), ErrIdempotencyCheckFailed)
		}
		replay.Replayed = true
		return idempotencyClaim{}, &replay, nil
	}

	if !rec.Expired(now) {
		return idempotencyClaim{}, nil, ErrCheckoutInProgress
	}

	var claimed int64
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		claimed, err = tx.Idempotency().ClaimExpired(ctx, tx.DB(), claim.key, claim.customerID, hash, now.Add(idempotencyTTL))
		return err
	})
	if err != nil {
		return idempotencyClaim{}, nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if claimed == 0 {
		return idempotencyClaim{}, nil, ErrCheckoutInProgress
	}
	s.logger.InfoContext(ctx, "took over expired idempotency key", slog.String("idempotency_key", claim.key.String()))
	return claim, nil, nil
}

// release drops the processing row so the client may retry after an abort
func (s *CheckoutSaga) releaseClaim(ctx context.Context, claim idempotencyClaim) {
	if !claim.active() {
		return
	}
	err := s.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), claim.key, claim.customerID)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to release idempotency key",
			slog.String("idempotency_key", claim.key.String()),
			slog.String("error", err.Error()),
		)
	}
}

func completeClaim(ctx context.Context, tx shared.Tx, claim idempotencyClaim, result *CheckoutResult) error {
	if !claim.active() {
		return nil
	}
	body, err := json.Marshal(result)
	if err != nil {
		return errs.Wrap(err, "encode checkout result")
	}
	purchaseID := result.PurchaseID
	return tx.Idempotency().Complete(ctx, tx.DB(), claim.key, claim.customerID, &purchaseID, body)
}
