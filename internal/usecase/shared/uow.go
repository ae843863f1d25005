package shared

import (
	"context"
	"time"

	"booking-orchestrator/internal/domain/cart"
	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/domain/purchase"
	"booking-orchestrator/internal/domain/reservation"
	"booking-orchestrator/internal/infra/db"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow_mock.go -package=sharedmock

type UnitOfWork interface {
	// Within: ReadCommitted transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: Serializable transaction, retried on serialization failure and deadlock
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, q db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Services() ServiceRepository
	Cart() CartRepository
	Reservations() ReservationRepository
	Purchases() PurchaseRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ServiceByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
	CartItems(ctx context.Context, customerID uuid.UUID) ([]*cart.Item, error)
	CartItem(ctx context.Context, customerID, itemID uuid.UUID) (*cart.Item, error)
	IdempotencyByKey(ctx context.Context, key, customerID uuid.UUID) (*IdempotencyRecord, error)
}

type ServiceRepository interface {
	Save(ctx context.Context, q db.DBTX, svc *catalog.Service) error
}

type CartRepository interface {
	Add(ctx context.Context, q db.DBTX, item *cart.Item) error
	AttachHold(ctx context.Context, q db.DBTX, itemID uuid.UUID, hold cart.Hold) error
	Remove(ctx context.Context, q db.DBTX, customerID, itemID uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, q db.DBTX, r *reservation.Reservation) error
	FindForUpdate(ctx context.Context, q db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	MarkCancelled(ctx context.Context, q db.DBTX, r *reservation.Reservation) error
}

type PurchaseRepository interface {
	Create(ctx context.Context, q db.DBTX, p *purchase.Purchase) error
	Link(ctx context.Context, q db.DBTX, link purchase.Link) error
	FindForUpdate(ctx context.Context, q db.DBTX, id uuid.UUID) (*purchase.Purchase, error)
	UpdateInvoiceURL(ctx context.Context, q db.DBTX, p *purchase.Purchase) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, q db.DBTX, key, customerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Complete(ctx context.Context, q db.DBTX, key, customerID uuid.UUID, purchaseID *uuid.UUID, responseBody []byte) error
	ClaimExpired(ctx context.Context, q db.DBTX, key, customerID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
	Release(ctx context.Context, q db.DBTX, key, customerID uuid.UUID) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, q db.DBTX, evt OutboxEvent) error
}
