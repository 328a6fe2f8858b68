package usecase

import (
	"context"
	"time"

	"github.com/iho/payproc/internal/domain"
)

// ArchiveRepository persists the state of a processing run for offline
// analysis. Runs never load archived state back: archival is a
// write-only export.
type ArchiveRepository interface {
	SaveSnapshots(ctx context.Context, tx Transaction, snapshots []domain.Snapshot, archivedAt time.Time) error
	SaveEntries(ctx context.Context, tx Transaction, entries []domain.LedgerEntry, archivedAt time.Time) error
	SaveRejections(ctx context.Context, tx Transaction, rejections []Rejection) error
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

// Retrier retries an operation on transient failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
