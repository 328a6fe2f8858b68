package usecase_test

import (
	"errors"
	"testing"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
	"github.com/iho/payproc/internal/usecase/mocks"
	"github.com/shopspring/decimal"
)

func TestRejectionJournal_RecordsRejections(t *testing.T) {
	journal := usecase.NewRejectionJournal(10, mocks.NewMockIDGeneratorFake())

	activity := domain.Withdrawal{TX: 7, Client: 3, Amount: decimal.NewFromInt(100)}
	journal.OnRejected(activity, domain.ErrInsufficientFunds)

	entries := journal.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].TX != 7 || entries[0].Client != 3 {
		t.Errorf("unexpected entry %+v", entries[0])
	}
	if entries[0].Kind != domain.KindWithdrawal {
		t.Errorf("expected kind withdrawal, got %q", entries[0].Kind)
	}
	if entries[0].Reason != domain.ErrInsufficientFunds.Error() {
		t.Errorf("unexpected reason %q", entries[0].Reason)
	}
	if entries[0].ID == "" {
		t.Error("expected a generated id")
	}
	if entries[0].At.IsZero() {
		t.Error("expected a timestamp")
	}
}

func TestRejectionJournal_RecordsMalformed(t *testing.T) {
	journal := usecase.NewRejectionJournal(10, mocks.NewMockIDGeneratorFake())

	journal.OnMalformed(errors.New("row 4: bad amount"))

	entries := journal.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Kind != "malformed" {
		t.Errorf("expected kind malformed, got %q", entries[0].Kind)
	}
}

func TestRejectionJournal_BoundedSize(t *testing.T) {
	journal := usecase.NewRejectionJournal(3, mocks.NewMockIDGeneratorFake())

	for tx := 1; tx <= 5; tx++ {
		journal.OnRejected(domain.Dispute{TX: domain.TransactionID(tx), Client: 1}, domain.ErrUnknownTransaction)
	}

	entries := journal.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].TX != 3 || entries[2].TX != 5 {
		t.Errorf("expected oldest entries dropped, got %+v", entries)
	}
}

func TestRejectionJournal_RecentNewestFirst(t *testing.T) {
	journal := usecase.NewRejectionJournal(10, mocks.NewMockIDGeneratorFake())

	for tx := 1; tx <= 4; tx++ {
		journal.OnRejected(domain.Resolve{TX: domain.TransactionID(tx), Client: 1}, domain.ErrWrongDisputeState)
	}

	recent := journal.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].TX != 4 || recent[1].TX != 3 {
		t.Errorf("expected newest first, got %+v", recent)
	}

	all := journal.Recent(0)
	if len(all) != 4 {
		t.Errorf("expected limit 0 to return everything, got %d", len(all))
	}
}

func TestRejectionJournal_OnAppliedIsNoop(t *testing.T) {
	journal := usecase.NewRejectionJournal(10, mocks.NewMockIDGeneratorFake())

	journal.OnApplied(domain.Deposit{TX: 1, Client: 1, Amount: decimal.NewFromInt(5)})

	if len(journal.All()) != 0 {
		t.Error("applied activities must not be journaled")
	}
}
