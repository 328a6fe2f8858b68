package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
)

func depositEntry(tx domain.TransactionID, owner domain.ClientID, amount string) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		TX:     tx,
		Owner:  owner,
		Kind:   domain.EntryDeposit,
		Amount: decimal.RequireFromString(amount),
	}
}

func TestTransactionLedger_InsertIfAbsent(t *testing.T) {
	l := NewTransactionLedger()

	if !l.InsertIfAbsent(depositEntry(1, 1, "10")) {
		t.Fatal("expected first insert to succeed")
	}

	if l.InsertIfAbsent(depositEntry(1, 2, "99")) {
		t.Fatal("expected insert of duplicate tx id to fail")
	}

	entry, ok := l.Get(1)
	if !ok {
		t.Fatal("expected entry for tx 1")
	}
	if entry.Owner != 1 || !entry.Amount.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("duplicate insert must not overwrite, got %+v", entry)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", l.Len())
	}
}

func TestTransactionLedger_Transition(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(l *TransactionLedger)
		from    domain.DisputeState
		to      domain.DisputeState
		want    bool
	}{
		{
			name:    "clean to disputed",
			prepare: func(l *TransactionLedger) { l.InsertIfAbsent(depositEntry(1, 1, "10")) },
			from:    domain.StateClean,
			to:      domain.StateDisputed,
			want:    true,
		},
		{
			name:    "missing entry",
			prepare: func(l *TransactionLedger) {},
			from:    domain.StateClean,
			to:      domain.StateDisputed,
			want:    false,
		},
		{
			name: "state mismatch leaves entry untouched",
			prepare: func(l *TransactionLedger) {
				l.InsertIfAbsent(depositEntry(1, 1, "10"))
				l.Transition(1, domain.StateClean, domain.StateDisputed)
			},
			from: domain.StateClean,
			to:   domain.StateDisputed,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewTransactionLedger()
			tt.prepare(l)

			if got := l.Transition(1, tt.from, tt.to); got != tt.want {
				t.Fatalf("Transition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransactionLedger_TerminalStates(t *testing.T) {
	for _, terminal := range []domain.DisputeState{domain.StateResolved, domain.StateChargedBack} {
		l := NewTransactionLedger()
		l.InsertIfAbsent(depositEntry(1, 1, "10"))
		l.Transition(1, domain.StateClean, domain.StateDisputed)
		l.Transition(1, domain.StateDisputed, terminal)

		if l.Transition(1, terminal, domain.StateDisputed) {
			t.Fatalf("expected %s to be terminal", terminal)
		}
		if l.Transition(1, domain.StateClean, domain.StateDisputed) {
			t.Fatalf("expected no transition out of %s", terminal)
		}
	}
}

func TestTransactionLedger_EntriesOrdered(t *testing.T) {
	l := NewTransactionLedger()
	for _, tx := range []domain.TransactionID{5, 1, 3} {
		l.InsertIfAbsent(depositEntry(tx, 1, "1"))
	}

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []domain.TransactionID{1, 3, 5} {
		if entries[i].TX != want {
			t.Fatalf("expected entries[%d].TX = %s, got %s", i, want, entries[i].TX)
		}
	}
}

func TestAccountStore_GetOrCreate(t *testing.T) {
	s := NewAccountStore()

	a := s.GetOrCreate(1)
	if !a.Available.IsZero() || !a.Held.IsZero() || a.Locked {
		t.Fatalf("expected fresh zero account, got %+v", a)
	}

	a.Credit(decimal.RequireFromString("5"))

	if b := s.GetOrCreate(1); b != a {
		t.Fatal("expected GetOrCreate to return the same account instance")
	}

	if _, ok := s.Get(2); ok {
		t.Fatal("expected Get not to instantiate unknown clients")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 account, got %d", s.Len())
	}
}

func TestAccountStore_SnapshotsOrdered(t *testing.T) {
	s := NewAccountStore()
	for _, client := range []domain.ClientID{9, 2, 5} {
		s.GetOrCreate(client)
	}

	snapshots := s.Snapshots()
	if len(snapshots) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snapshots))
	}
	for i, want := range []domain.ClientID{2, 5, 9} {
		if snapshots[i].Client != want {
			t.Fatalf("expected snapshots[%d].Client = %s, got %s", i, want, snapshots[i].Client)
		}
	}
}
