package domain

import (
	"github.com/shopspring/decimal"
)

// Account holds the balance state of one client.
//
// Total is never stored; it is always derived from Available and Held,
// so the two can never drift apart from their sum.
type Account struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// NewAccount creates an account with zero balances.
func NewAccount(client ClientID) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total returns the full balance, available plus held.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// Credit adds amount to the available balance.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
}

// Debit removes amount from the available balance. It fails if the
// available balance does not cover the amount.
func (a *Account) Debit(amount decimal.Decimal) error {
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amount)

	return nil
}

// Hold freezes amount pending a dispute investigation. Available is
// allowed to go negative here: disputing a withdrawal holds funds that
// already left the account.
func (a *Account) Hold(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
}

// Release returns previously held amount to available.
func (a *Account) Release(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
}

// Charge withdraws previously held amount from the account entirely.
func (a *Account) Charge(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
}

// Lock freezes the account. Locking is monotonic: there is no unlock.
func (a *Account) Lock() {
	a.Locked = true
}

// Snapshot returns the read-only export view of the account.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		Client:    a.Client,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total(),
		Locked:    a.Locked,
	}
}

// Snapshot is the final per-client view produced by a processing run.
type Snapshot struct {
	Client    ClientID        `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}
