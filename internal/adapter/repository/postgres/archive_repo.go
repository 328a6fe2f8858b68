package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// ArchiveRepository implements usecase.ArchiveRepository. Archival is
// write-only: the processor never reads state back from the database.
type ArchiveRepository struct{}

// NewArchiveRepository creates a new ArchiveRepository.
func NewArchiveRepository() *ArchiveRepository {
	return &ArchiveRepository{}
}

const upsertSnapshotSQL = `
INSERT INTO accounts (client_id, available, held, total, locked, archived_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (client_id) DO UPDATE SET
    available   = EXCLUDED.available,
    held        = EXCLUDED.held,
    total       = EXCLUDED.total,
    locked      = EXCLUDED.locked,
    archived_at = EXCLUDED.archived_at`

// SaveSnapshots upserts account snapshots.
func (r *ArchiveRepository) SaveSnapshots(ctx context.Context, tx usecase.Transaction, snapshots []domain.Snapshot, archivedAt time.Time) error {
	if len(snapshots) == 0 {
		return nil
	}

	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, s := range snapshots {
		batch.Queue(upsertSnapshotSQL,
			int32(s.Client),
			decimalToNumeric(s.Available),
			decimalToNumeric(s.Held),
			decimalToNumeric(s.Total),
			s.Locked,
			timeToPgTimestamptz(archivedAt),
		)
	}

	return pgxTx.SendBatch(ctx, batch).Close()
}

const upsertEntrySQL = `
INSERT INTO transactions (tx_id, client_id, kind, amount, dispute_state, archived_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (tx_id) DO UPDATE SET
    dispute_state = EXCLUDED.dispute_state,
    archived_at   = EXCLUDED.archived_at`

// SaveEntries upserts ledger entries. Only the dispute state of an
// already archived entry can change.
func (r *ArchiveRepository) SaveEntries(ctx context.Context, tx usecase.Transaction, entries []domain.LedgerEntry, archivedAt time.Time) error {
	if len(entries) == 0 {
		return nil
	}

	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(upsertEntrySQL,
			int64(e.TX),
			int32(e.Owner),
			string(e.Kind),
			decimalToNumeric(e.Amount),
			e.State.String(),
			timeToPgTimestamptz(archivedAt),
		)
	}

	return pgxTx.SendBatch(ctx, batch).Close()
}

const insertRejectionSQL = `
INSERT INTO rejections (id, tx_id, client_id, kind, reason, rejected_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`

// SaveRejections inserts journaled rejections. Re-archiving the same
// journal entry is a no-op.
func (r *ArchiveRepository) SaveRejections(ctx context.Context, tx usecase.Transaction, rejections []usecase.Rejection) error {
	if len(rejections) == 0 {
		return nil
	}

	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, rej := range rejections {
		batch.Queue(insertRejectionSQL,
			rej.ID,
			int64(rej.TX),
			int32(rej.Client),
			string(rej.Kind),
			rej.Reason,
			timeToPgTimestamptz(rej.At),
		)
	}

	return pgxTx.SendBatch(ctx, batch).Close()
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
