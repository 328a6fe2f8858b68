package domain

import (
	"github.com/shopspring/decimal"
)

// EntryKind is the original kind of a recorded transaction.
type EntryKind string

const (
	EntryDeposit    EntryKind = "deposit"
	EntryWithdrawal EntryKind = "withdrawal"
)

// DisputeState tracks a ledger entry through its dispute lifecycle.
//
// The only legal transitions are Clean -> Disputed and
// Disputed -> {Resolved, ChargedBack}. Resolved and ChargedBack are
// terminal.
type DisputeState uint8

const (
	StateClean DisputeState = iota
	StateDisputed
	StateResolved
	StateChargedBack
)

func (s DisputeState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDisputed:
		return "disputed"
	case StateResolved:
		return "resolved"
	case StateChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

// LedgerEntry is the recorded form of a deposit or withdrawal. Entries
// are immutable except for State and are never removed: any later
// dispute-family record may reference any earlier transaction id.
type LedgerEntry struct {
	TX     TransactionID
	Owner  ClientID
	Kind   EntryKind
	Amount decimal.Decimal
	State  DisputeState
}
