package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/ledger"
	"github.com/iho/payproc/internal/usecase"
	"github.com/iho/payproc/internal/usecase/mocks"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newArchiveFixture(t *testing.T) (*usecase.ActivityUseCase, *usecase.RejectionJournal) {
	t.Helper()

	journal := usecase.NewRejectionJournal(100, mocks.NewMockIDGeneratorFake())
	processor := ledger.NewProcessor(zerolog.Nop(), journal)
	uc := usecase.NewActivityUseCase(processor, journal, nil)

	uc.SubmitBatch(context.Background(), []domain.AccountActivity{
		domain.Deposit{TX: 1, Client: 1, Amount: decimal.NewFromInt(100)},
		domain.Deposit{TX: 2, Client: 2, Amount: decimal.NewFromInt(50)},
		domain.Withdrawal{TX: 3, Client: 1, Amount: decimal.NewFromInt(999)},
	})

	return uc, journal
}

func TestArchiveUseCase_Archive(t *testing.T) {
	activityUC, journal := newArchiveFixture(t)

	repo := mocks.NewMockArchiveRepositoryFake()
	tx := &mocks.MockTransactionFake{}
	txMgr := mocks.NewMockTransactionManagerFake()
	txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return tx, nil
	}

	uc := usecase.NewArchiveUseCase(txMgr, repo, nil, activityUC, journal, nil)

	if err := uc.Archive(context.Background()); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	if len(repo.Snapshots) != 2 {
		t.Errorf("expected 2 snapshots archived, got %d", len(repo.Snapshots))
	}
	if len(repo.Entries) != 2 {
		t.Errorf("expected 2 ledger entries archived, got %d", len(repo.Entries))
	}
	if len(repo.Rejections) != 1 {
		t.Errorf("expected 1 rejection archived, got %d", len(repo.Rejections))
	}
	if tx.Commits != 1 {
		t.Errorf("expected 1 commit, got %d", tx.Commits)
	}
}

func TestArchiveUseCase_RollsBackOnSaveFailure(t *testing.T) {
	activityUC, journal := newArchiveFixture(t)

	saveErr := errors.New("connection reset")
	repo := mocks.NewMockArchiveRepositoryFake()
	repo.SaveEntriesFunc = func(ctx context.Context, tx usecase.Transaction, entries []domain.LedgerEntry, archivedAt time.Time) error {
		return saveErr
	}

	tx := &mocks.MockTransactionFake{}
	txMgr := mocks.NewMockTransactionManagerFake()
	txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return tx, nil
	}

	uc := usecase.NewArchiveUseCase(txMgr, repo, nil, activityUC, journal, nil)

	err := uc.Archive(context.Background())
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if tx.Commits != 0 {
		t.Errorf("expected no commit, got %d", tx.Commits)
	}
	if tx.Rollbacks != 1 {
		t.Errorf("expected 1 rollback, got %d", tx.Rollbacks)
	}
}

func TestArchiveUseCase_BeginFailure(t *testing.T) {
	activityUC, journal := newArchiveFixture(t)

	beginErr := errors.New("pool exhausted")
	txMgr := mocks.NewMockTransactionManagerFake()
	txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return nil, beginErr
	}

	uc := usecase.NewArchiveUseCase(txMgr, mocks.NewMockArchiveRepositoryFake(), nil, activityUC, journal, nil)

	if err := uc.Archive(context.Background()); !errors.Is(err, beginErr) {
		t.Fatalf("expected begin error, got %v", err)
	}
}

func TestArchiveUseCase_UsesRetrier(t *testing.T) {
	activityUC, journal := newArchiveFixture(t)

	repo := mocks.NewMockArchiveRepositoryFake()
	txMgr := mocks.NewMockTransactionManagerFake()
	retrier := mocks.NewMockRetrierFake()

	uc := usecase.NewArchiveUseCase(txMgr, repo, retrier, activityUC, journal, nil)

	if err := uc.Archive(context.Background()); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if retrier.Calls != 1 {
		t.Errorf("expected the retrier invoked once, got %d", retrier.Calls)
	}
	if len(repo.Snapshots) != 2 {
		t.Errorf("expected snapshots archived through the retrier, got %d", len(repo.Snapshots))
	}
}
