package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/gofintrack/internal/domain"
)

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, record *domain.Transaction) error
	// Delete removes an owner's record and returns it. Missing records yield
	// domain.ErrTransactionNotFound.
	Delete(ctx context.Context, tx Transaction, ownerID, id string) (*domain.Transaction, error)
	GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	// ListByOwner returns every record of the owner ordered by date and then
	// creation time, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Transaction, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ErrCacheMiss is returned by Cache.Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SnapshotVersioner tracks a monotonically increasing version per owner
// that changes whenever the owner's snapshot changes.
type SnapshotVersioner interface {
	Current(ctx context.Context, ownerID string) (int64, error)
	Bump(ctx context.Context, ownerID string) (int64, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release forgets a key whose request failed.
	Release(ctx context.Context, key string) error
}

// Clock supplies the current instant in the calendar location used for
// day, month and weekday boundaries.
type Clock interface {
	Now() time.Time
}

// ReportMetrics records analytics activity.
type ReportMetrics interface {
	ObserveReport(duration time.Duration, cacheHit bool)
}

// ChangeSubscription is an open stream of one owner's change notifications.
type ChangeSubscription interface {
	// Events is closed when the subscription ends.
	Events() <-chan domain.ChangeNotification
	Close() error
}

// ChangeSubscriber opens change-notification streams.
type ChangeSubscriber interface {
	Subscribe(ctx context.Context, ownerID string) (ChangeSubscription, error)
}
