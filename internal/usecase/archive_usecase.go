package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/infrastructure/metrics"
)

// ArchiveUseCase exports the current run state to persistent storage.
type ArchiveUseCase struct {
	txManager   TransactionManager
	archiveRepo ArchiveRepository
	retrier     Retrier
	activityUC  *ActivityUseCase
	journal     *RejectionJournal
	metrics     *metrics.Metrics
}

// NewArchiveUseCase creates a new ArchiveUseCase. retrier and metrics
// may be nil.
func NewArchiveUseCase(
	txManager TransactionManager,
	archiveRepo ArchiveRepository,
	retrier Retrier,
	activityUC *ActivityUseCase,
	journal *RejectionJournal,
	m *metrics.Metrics,
) *ArchiveUseCase {
	return &ArchiveUseCase{
		txManager:   txManager,
		archiveRepo: archiveRepo,
		retrier:     retrier,
		activityUC:  activityUC,
		journal:     journal,
		metrics:     m,
	}
}

// Archive persists account snapshots, ledger entries and the rejection
// journal in a single database transaction.
func (uc *ArchiveUseCase) Archive(ctx context.Context) error {
	start := time.Now()

	snapshots := uc.activityUC.Snapshots()
	entries := uc.activityUC.Entries()

	var rejections []Rejection
	if uc.journal != nil {
		rejections = uc.journal.All()
	}

	archivedAt := time.Now().UTC()

	operation := func() error {
		return uc.archiveOnce(ctx, snapshots, entries, rejections, archivedAt)
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}

	if uc.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		uc.metrics.ArchiveRuns.WithLabelValues(status).Inc()
		uc.metrics.ArchiveDuration.Observe(time.Since(start).Seconds())
	}

	return err
}

func (uc *ArchiveUseCase) archiveOnce(ctx context.Context, snapshots []domain.Snapshot, entries []domain.LedgerEntry, rejections []Rejection, archivedAt time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning archive transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := uc.archiveRepo.SaveSnapshots(ctx, tx, snapshots, archivedAt); err != nil {
		return fmt.Errorf("archiving snapshots: %w", err)
	}
	if err := uc.archiveRepo.SaveEntries(ctx, tx, entries, archivedAt); err != nil {
		return fmt.Errorf("archiving ledger entries: %w", err)
	}
	if err := uc.archiveRepo.SaveRejections(ctx, tx, rejections); err != nil {
		return fmt.Errorf("archiving rejections: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing archive transaction: %w", err)
	}

	return nil
}

// Run archives periodically until ctx is cancelled. Errors are
// returned to the caller per tick via onError (may be nil).
func (uc *ArchiveUseCase) Run(ctx context.Context, interval time.Duration, onError func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := uc.Archive(ctx); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
