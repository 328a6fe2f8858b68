package ledger

import (
	"sort"

	"github.com/iho/payproc/internal/domain"
)

// TransactionLedger maps transaction ids to their recorded entries. It
// is the source of truth when validating dispute, resolve and
// chargeback references. Entries are never removed.
type TransactionLedger struct {
	entries map[domain.TransactionID]*domain.LedgerEntry
}

// NewTransactionLedger creates an empty ledger.
func NewTransactionLedger() *TransactionLedger {
	return &TransactionLedger{
		entries: make(map[domain.TransactionID]*domain.LedgerEntry),
	}
}

// Get returns the entry recorded under tx, if any.
func (l *TransactionLedger) Get(tx domain.TransactionID) (*domain.LedgerEntry, bool) {
	entry, ok := l.entries[tx]
	return entry, ok
}

// InsertIfAbsent records entry under its transaction id. It returns
// false without overwriting when the id is already taken.
func (l *TransactionLedger) InsertIfAbsent(entry *domain.LedgerEntry) bool {
	if _, ok := l.entries[entry.TX]; ok {
		return false
	}
	l.entries[entry.TX] = entry

	return true
}

// Transition moves the entry under tx from one dispute state to
// another, compare-and-set style. It returns false when the entry is
// missing or not in the expected state, leaving the ledger untouched.
func (l *TransactionLedger) Transition(tx domain.TransactionID, from, to domain.DisputeState) bool {
	entry, ok := l.entries[tx]
	if !ok || entry.State != from {
		return false
	}
	entry.State = to

	return true
}

// Len returns the number of recorded entries.
func (l *TransactionLedger) Len() int {
	return len(l.entries)
}

// Entries returns all recorded entries ordered by transaction id.
func (l *TransactionLedger) Entries() []*domain.LedgerEntry {
	entries := make([]*domain.LedgerEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TX < entries[j].TX
	})

	return entries
}
