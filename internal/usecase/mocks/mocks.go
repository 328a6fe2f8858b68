package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// MockArchiveRepositoryFake is a hand-written mock of ArchiveRepository
// that records what was saved.
type MockArchiveRepositoryFake struct {
	mu         sync.Mutex
	Snapshots  []domain.Snapshot
	Entries    []domain.LedgerEntry
	Rejections []usecase.Rejection

	SaveSnapshotsFunc  func(ctx context.Context, tx usecase.Transaction, snapshots []domain.Snapshot, archivedAt time.Time) error
	SaveEntriesFunc    func(ctx context.Context, tx usecase.Transaction, entries []domain.LedgerEntry, archivedAt time.Time) error
	SaveRejectionsFunc func(ctx context.Context, tx usecase.Transaction, rejections []usecase.Rejection) error
}

func NewMockArchiveRepositoryFake() *MockArchiveRepositoryFake {
	return &MockArchiveRepositoryFake{}
}

func (m *MockArchiveRepositoryFake) SaveSnapshots(ctx context.Context, tx usecase.Transaction, snapshots []domain.Snapshot, archivedAt time.Time) error {
	if m.SaveSnapshotsFunc != nil {
		return m.SaveSnapshotsFunc(ctx, tx, snapshots, archivedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshots = append(m.Snapshots, snapshots...)
	return nil
}

func (m *MockArchiveRepositoryFake) SaveEntries(ctx context.Context, tx usecase.Transaction, entries []domain.LedgerEntry, archivedAt time.Time) error {
	if m.SaveEntriesFunc != nil {
		return m.SaveEntriesFunc(ctx, tx, entries, archivedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entries...)
	return nil
}

func (m *MockArchiveRepositoryFake) SaveRejections(ctx context.Context, tx usecase.Transaction, rejections []usecase.Rejection) error {
	if m.SaveRejectionsFunc != nil {
		return m.SaveRejectionsFunc(ctx, tx, rejections)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejections = append(m.Rejections, rejections...)
	return nil
}

// MockTransactionManagerFake is a hand-written mock of TransactionManager.
type MockTransactionManagerFake struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManagerFake() *MockTransactionManagerFake {
	return &MockTransactionManagerFake{}
}

func (m *MockTransactionManagerFake) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransactionFake{}, nil
}

// MockTransactionFake is a hand-written mock of Transaction.
type MockTransactionFake struct {
	Commits   int
	Rollbacks int

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransactionFake) Commit(ctx context.Context) error {
	m.Commits++
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransactionFake) Rollback(ctx context.Context) error {
	m.Rollbacks++
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrierFake invokes the operation once unless RetryFunc is set.
type MockRetrierFake struct {
	Calls     int
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrierFake() *MockRetrierFake {
	return &MockRetrierFake{}
}

func (m *MockRetrierFake) Retry(ctx context.Context, operation func() error) error {
	m.Calls++
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGeneratorFake generates sequential IDs.
type MockIDGeneratorFake struct {
	mu           sync.Mutex
	counter      int
	GenerateFunc func() string
}

func NewMockIDGeneratorFake() *MockIDGeneratorFake {
	return &MockIDGeneratorFake{}
}

func (m *MockIDGeneratorFake) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockIdempotencyStoreFake is a map-backed mock of IdempotencyStore.
type MockIdempotencyStoreFake struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStoreFake() *MockIdempotencyStoreFake {
	return &MockIdempotencyStoreFake{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStoreFake) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStoreFake) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
