package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ClientID identifies a client. IDs are stable for the whole run and
// never reused.
type ClientID uint16

func (c ClientID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// TransactionID identifies a deposit or withdrawal. Dispute, resolve
// and chargeback records reference an existing TransactionID instead
// of introducing a new one.
type TransactionID uint32

func (t TransactionID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// ActivityKind discriminates account activity records.
type ActivityKind string

const (
	KindDeposit    ActivityKind = "deposit"
	KindWithdrawal ActivityKind = "withdrawal"
	KindDispute    ActivityKind = "dispute"
	KindResolve    ActivityKind = "resolve"
	KindChargeback ActivityKind = "chargeback"
)

// AccountActivity is a single record of the input stream. The concrete
// types below form the closed set of variants; each carries exactly the
// fields its kind requires, so "which fields are valid" is settled at
// construction time.
type AccountActivity interface {
	Kind() ActivityKind
	TransactionID() TransactionID
	ClientID() ClientID

	sealed()
}

// Deposit adds funds to an account, increasing its available balance.
type Deposit struct {
	TX     TransactionID
	Client ClientID
	Amount decimal.Decimal
}

func (d Deposit) Kind() ActivityKind           { return KindDeposit }
func (d Deposit) TransactionID() TransactionID { return d.TX }
func (d Deposit) ClientID() ClientID           { return d.Client }
func (d Deposit) sealed()                      {}

// Withdrawal removes funds from an account, decreasing its available
// balance.
type Withdrawal struct {
	TX     TransactionID
	Client ClientID
	Amount decimal.Decimal
}

func (w Withdrawal) Kind() ActivityKind           { return KindWithdrawal }
func (w Withdrawal) TransactionID() TransactionID { return w.TX }
func (w Withdrawal) ClientID() ClientID           { return w.Client }
func (w Withdrawal) sealed()                      {}

// Dispute opens a dispute case against an earlier transaction, moving
// its amount from available to held while the case is investigated.
type Dispute struct {
	TX     TransactionID
	Client ClientID
}

func (d Dispute) Kind() ActivityKind           { return KindDispute }
func (d Dispute) TransactionID() TransactionID { return d.TX }
func (d Dispute) ClientID() ClientID           { return d.Client }
func (d Dispute) sealed()                      {}

// Resolve closes a dispute case in favour of the original transaction,
// releasing the held amount back to available.
type Resolve struct {
	TX     TransactionID
	Client ClientID
}

func (r Resolve) Kind() ActivityKind           { return KindResolve }
func (r Resolve) TransactionID() TransactionID { return r.TX }
func (r Resolve) ClientID() ClientID           { return r.Client }
func (r Resolve) sealed()                      {}

// Chargeback closes a dispute case in favour of the client, withdrawing
// the held amount and locking the account.
type Chargeback struct {
	TX     TransactionID
	Client ClientID
}

func (c Chargeback) Kind() ActivityKind           { return KindChargeback }
func (c Chargeback) TransactionID() TransactionID { return c.TX }
func (c Chargeback) ClientID() ClientID           { return c.Client }
func (c Chargeback) sealed()                      {}
