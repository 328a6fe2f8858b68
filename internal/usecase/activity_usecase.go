package usecase

import (
	"context"
	"sync"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/infrastructure/metrics"
	"github.com/iho/payproc/internal/ledger"
)

// ActivityUseCase serializes activity application over a single
// processor. The fold itself is strictly sequential; the mutex only
// shields it from concurrent HTTP handlers.
type ActivityUseCase struct {
	mu        sync.Mutex
	processor *ledger.Processor
	journal   *RejectionJournal
	metrics   *metrics.Metrics
}

// NewActivityUseCase creates a new ActivityUseCase. metrics may be nil.
func NewActivityUseCase(processor *ledger.Processor, journal *RejectionJournal, m *metrics.Metrics) *ActivityUseCase {
	return &ActivityUseCase{
		processor: processor,
		journal:   journal,
		metrics:   m,
	}
}

// Outcome is the result of applying one record of a batch.
type Outcome struct {
	Index   int
	TX      domain.TransactionID
	Client  domain.ClientID
	Kind    domain.ActivityKind
	Applied bool
	Reason  string
}

// BatchResult summarizes a submitted batch.
type BatchResult struct {
	Applied  int
	Rejected int
	Outcomes []Outcome
}

// SubmitBatch applies activities in the order given. Rejected records
// never abort the batch; their reasons are reported per record.
func (uc *ActivityUseCase) SubmitBatch(_ context.Context, activities []domain.AccountActivity) BatchResult {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.metrics != nil {
		uc.metrics.BatchesSubmitted.Inc()
		uc.metrics.BatchSize.Observe(float64(len(activities)))
	}

	result := BatchResult{Outcomes: make([]Outcome, 0, len(activities))}
	for i, activity := range activities {
		outcome := Outcome{
			Index:  i,
			TX:     activity.TransactionID(),
			Client: activity.ClientID(),
			Kind:   activity.Kind(),
		}

		if err := uc.processor.Apply(activity); err != nil {
			outcome.Reason = err.Error()
			result.Rejected++
		} else {
			outcome.Applied = true
			result.Applied++
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result
}

// GetAccount returns the snapshot for one client.
func (uc *ActivityUseCase) GetAccount(_ context.Context, client domain.ClientID) (domain.Snapshot, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, ok := uc.processor.Accounts().Get(client)
	if !ok {
		return domain.Snapshot{}, domain.ErrAccountNotFound
	}

	return account.Snapshot(), nil
}

// ListAccounts returns snapshots of every known account, ordered by
// client id.
func (uc *ActivityUseCase) ListAccounts(_ context.Context) []domain.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.processor.Accounts().Snapshots()
}

// GetEntry returns the ledger entry recorded under tx.
func (uc *ActivityUseCase) GetEntry(_ context.Context, tx domain.TransactionID) (domain.LedgerEntry, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	entry, ok := uc.processor.Ledger().Get(tx)
	if !ok {
		return domain.LedgerEntry{}, domain.ErrUnknownTransaction
	}

	return *entry, nil
}

// ListRejections returns up to limit recent rejections, newest first.
func (uc *ActivityUseCase) ListRejections(_ context.Context, limit int) []Rejection {
	if uc.journal == nil {
		return nil
	}

	return uc.journal.Recent(limit)
}

// Entries returns copies of all recorded ledger entries, ordered by
// transaction id.
func (uc *ActivityUseCase) Entries() []domain.LedgerEntry {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	recorded := uc.processor.Ledger().Entries()
	entries := make([]domain.LedgerEntry, 0, len(recorded))
	for _, e := range recorded {
		entries = append(entries, *e)
	}

	return entries
}

// Snapshots returns snapshots of every known account, ordered by
// client id.
func (uc *ActivityUseCase) Snapshots() []domain.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.processor.Accounts().Snapshots()
}
