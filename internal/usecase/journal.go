package usecase

import (
	"sync"
	"time"

	"github.com/iho/payproc/internal/domain"
)

// Rejection is one journaled record-level policy rejection.
type Rejection struct {
	ID     string
	TX     domain.TransactionID
	Client domain.ClientID
	Kind   domain.ActivityKind
	Reason string
	At     time.Time
}

// RejectionJournal keeps a bounded, in-memory trail of rejected and
// malformed records. It implements ledger.Observer, serving as the
// diagnostic side channel for per-record policy decisions.
type RejectionJournal struct {
	mu      sync.Mutex
	idGen   IDGenerator
	entries []Rejection
	size    int
}

// NewRejectionJournal creates a journal keeping at most size entries;
// older entries are dropped first.
func NewRejectionJournal(size int, idGen IDGenerator) *RejectionJournal {
	if size <= 0 {
		size = 1024
	}

	return &RejectionJournal{
		idGen: idGen,
		size:  size,
	}
}

// OnApplied implements ledger.Observer.
func (j *RejectionJournal) OnApplied(domain.AccountActivity) {}

// OnRejected implements ledger.Observer.
func (j *RejectionJournal) OnRejected(activity domain.AccountActivity, reason error) {
	j.record(Rejection{
		TX:     activity.TransactionID(),
		Client: activity.ClientID(),
		Kind:   activity.Kind(),
		Reason: reason.Error(),
	})
}

// OnMalformed implements ledger.Observer.
func (j *RejectionJournal) OnMalformed(err error) {
	j.record(Rejection{
		Kind:   "malformed",
		Reason: err.Error(),
	})
}

func (j *RejectionJournal) record(r Rejection) {
	r.ID = j.idGen.Generate()
	r.At = time.Now().UTC()

	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append(j.entries, r)
	if len(j.entries) > j.size {
		j.entries = j.entries[len(j.entries)-j.size:]
	}
}

// Recent returns up to limit journaled rejections, newest first.
func (j *RejectionJournal) Recent(limit int) []Rejection {
	j.mu.Lock()
	defer j.mu.Unlock()

	if limit <= 0 || limit > len(j.entries) {
		limit = len(j.entries)
	}

	out := make([]Rejection, 0, limit)
	for i := len(j.entries) - 1; i >= len(j.entries)-limit; i-- {
		out = append(out, j.entries[i])
	}

	return out
}

// All returns every journaled rejection, oldest first.
func (j *RejectionJournal) All() []Rejection {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]Rejection, len(j.entries))
	copy(out, j.entries)

	return out
}
