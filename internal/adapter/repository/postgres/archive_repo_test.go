package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

func TestArchiveRepositorySaveSnapshots(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()

	batch := mockPool.ExpectBatch()
	batch.ExpectExec("INSERT INTO accounts").
		WithArgs(int32(1), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), false, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	batch.ExpectExec("INSERT INTO accounts").
		WithArgs(int32(2), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), true, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	repo := NewArchiveRepository()
	snapshots := []domain.Snapshot{
		{Client: 1, Available: decimal.NewFromInt(50), Held: decimal.Zero, Total: decimal.NewFromInt(50)},
		{Client: 2, Available: decimal.Zero, Held: decimal.Zero, Total: decimal.Zero, Locked: true},
	}

	if err := repo.SaveSnapshots(context.Background(), tx, snapshots, time.Now()); err != nil {
		t.Fatalf("SaveSnapshots: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestArchiveRepositorySaveEntries(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()

	batch := mockPool.ExpectBatch()
	batch.ExpectExec("INSERT INTO transactions").
		WithArgs(int64(7), int32(1), "deposit", pgxmock.AnyArg(), "disputed", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	repo := NewArchiveRepository()
	entries := []domain.LedgerEntry{
		{TX: 7, Owner: 1, Kind: domain.EntryDeposit, Amount: decimal.NewFromInt(10), State: domain.StateDisputed},
	}

	if err := repo.SaveEntries(context.Background(), tx, entries, time.Now()); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestArchiveRepositorySaveRejections(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()

	batch := mockPool.ExpectBatch()
	batch.ExpectExec("INSERT INTO rejections").
		WithArgs("01J0000000000000000000001", int64(3), int32(2), "withdrawal", "insufficient funds", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	repo := NewArchiveRepository()
	rejections := []usecase.Rejection{
		{ID: "01J0000000000000000000001", TX: 3, Client: 2, Kind: domain.KindWithdrawal, Reason: "insufficient funds", At: time.Now()},
	}

	if err := repo.SaveRejections(context.Background(), tx, rejections); err != nil {
		t.Fatalf("SaveRejections: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestArchiveRepositoryEmptyInputIsNoop(t *testing.T) {
	repo := NewArchiveRepository()

	// No transaction needed: empty slices never touch the database.
	if err := repo.SaveSnapshots(context.Background(), nil, nil, time.Now()); err != nil {
		t.Fatalf("SaveSnapshots: %v", err)
	}
	if err := repo.SaveEntries(context.Background(), nil, nil, time.Now()); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}
	if err := repo.SaveRejections(context.Background(), nil, nil); err != nil {
		t.Fatalf("SaveRejections: %v", err)
	}
}
