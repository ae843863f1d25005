package outbox

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"booking-orchestrator/internal/infra/db"
	"booking-orchestrator/internal/pkg/clock"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Store is implemented by repository.OutboxRepository
type Store interface {
	LockBatch(ctx context.Context, q db.DBTX, limit int) ([]shared.OutboxEvent, error)
	MarkSent(ctx context.Context, q db.DBTX, ids []uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, q db.DBTX, ids []uuid.UUID, lastError string, maxAttempts int) error
}

type Publisher interface {
	Dispatch(ctx context.Context, events ...shared.OutboxEvent) error
}

// TxBeginner is satisfied by *pgxpool.Pool
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Relay polls pending outbox rows and publishes them. Rows stay locked while being sent,
// so several relays can run against the same table.
type Relay struct {
	log         *slog.Logger
	pool        TxBeginner
	store       Store
	publisher   Publisher
	clock       clock.Clock
	batchSize   int
	interval    time.Duration
	maxAttempts int

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRelay(log *slog.Logger, pool TxBeginner, store Store, publisher Publisher, clk clock.Clock, interval time.Duration) *Relay {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Relay{
		log:         log,
		pool:        pool,
		store:       store,
		publisher:   publisher,
		clock:       clk,
		batchSize:   100,
		interval:    interval,
		maxAttempts: 10,
	}
}

// Start launches the polling loop; it returns immediately
func (r *Relay) Start(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	go func() {
		defer close(r.done)
		r.Run(ctx)
	}()
	r.log.Info("outbox relay started", "interval", r.interval.String())
	return nil
}

func (r *Relay) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()
	if cancel == nil {
		return nil
	}

	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Relay) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("outbox relay stopping")
			return
		case <-t.C:
			if _, err := r.RelayOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				r.log.Error("outbox relay batch error", "err", err)
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many events were sent
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	events, err := r.store.LockBatch(ctx, tx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	if err := r.publisher.Dispatch(ctx, events...); err != nil {
		if markErr := r.store.MarkFailed(ctx, tx, ids, err.Error(), r.maxAttempts); markErr != nil {
			return 0, markErr
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			return 0, commitErr
		}
		return 0, err
	}

	if err := r.store.MarkSent(ctx, tx, ids, r.clock.Now()); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(events), nil
}
