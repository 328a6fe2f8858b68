package ledger

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/iho/payproc/internal/domain"
)

// ActivitySource yields account activities in their causal order. Next
// returns io.EOF once the source is exhausted. A record that cannot be
// parsed is reported as an error wrapping domain.ErrMalformedRecord;
// any other error aborts the run.
type ActivitySource interface {
	Next() (domain.AccountActivity, error)
}

// Processor folds account activities into the combined transaction
// ledger and account store state. It is strictly sequential: the
// validity of record N+1 depends on the state built by records 1..N.
type Processor struct {
	ledger   *TransactionLedger
	accounts *AccountStore
	observer Observer
	logger   zerolog.Logger
}

// NewProcessor creates a processor with fresh state. A nil observer is
// replaced with a no-op one.
func NewProcessor(logger zerolog.Logger, observer Observer) *Processor {
	if observer == nil {
		observer = NopObserver{}
	}

	return &Processor{
		ledger:   NewTransactionLedger(),
		accounts: NewAccountStore(),
		observer: observer,
		logger:   logger,
	}
}

// Ledger exposes the transaction ledger built so far.
func (p *Processor) Ledger() *TransactionLedger {
	return p.ledger
}

// Accounts exposes the account store built so far.
func (p *Processor) Accounts() *AccountStore {
	return p.accounts
}

// Apply folds a single activity into the state. It never fails the
// run: a non-nil return is a rejection reason for this record only,
// and the state is left exactly as it was.
func (p *Processor) Apply(activity domain.AccountActivity) error {
	var err error

	switch a := activity.(type) {
	case domain.Deposit:
		err = p.deposit(a)
	case domain.Withdrawal:
		err = p.withdraw(a)
	case domain.Dispute:
		err = p.dispute(a.TX, a.Client)
	case domain.Resolve:
		err = p.resolve(a.TX, a.Client)
	case domain.Chargeback:
		err = p.chargeback(a.TX, a.Client)
	default:
		err = domain.ErrMalformedRecord
	}

	if err != nil {
		p.logger.Warn().
			Stringer("tx", activity.TransactionID()).
			Stringer("client", activity.ClientID()).
			Str("kind", string(activity.Kind())).
			Err(err).
			Msg("activity rejected")
		p.observer.OnRejected(activity, err)

		return err
	}

	p.observer.OnApplied(activity)

	return nil
}

// Run consumes src to exhaustion. Malformed records are skipped, any
// other source error is fatal and aborts the run with the state built
// so far intact.
func (p *Processor) Run(src ActivitySource) error {
	for {
		activity, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, domain.ErrMalformedRecord) {
				p.logger.Error().Err(err).Msg("skipping malformed record")
				p.observer.OnMalformed(err)

				continue
			}

			return fmt.Errorf("reading activity stream: %w", err)
		}

		// Rejections are already observed and logged by Apply.
		_ = p.Apply(activity)
	}
}

func (p *Processor) deposit(a domain.Deposit) error {
	if !a.Amount.IsPositive() {
		return domain.ErrNonPositiveAmount
	}

	account := p.accounts.GetOrCreate(a.Client)
	if account.Locked {
		return domain.ErrAccountLocked
	}

	entry := &domain.LedgerEntry{
		TX:     a.TX,
		Owner:  a.Client,
		Kind:   domain.EntryDeposit,
		Amount: a.Amount,
	}
	if !p.ledger.InsertIfAbsent(entry) {
		return domain.ErrDuplicateTransaction
	}

	account.Credit(a.Amount)

	return nil
}

func (p *Processor) withdraw(a domain.Withdrawal) error {
	if !a.Amount.IsPositive() {
		return domain.ErrNonPositiveAmount
	}

	account := p.accounts.GetOrCreate(a.Client)
	if account.Locked {
		return domain.ErrAccountLocked
	}

	if _, ok := p.ledger.Get(a.TX); ok {
		return domain.ErrDuplicateTransaction
	}

	// Check funds before recording: a rejected withdrawal leaves no
	// ledger entry behind.
	if err := account.Debit(a.Amount); err != nil {
		return err
	}

	p.ledger.InsertIfAbsent(&domain.LedgerEntry{
		TX:     a.TX,
		Owner:  a.Client,
		Kind:   domain.EntryWithdrawal,
		Amount: a.Amount,
	})

	return nil
}

func (p *Processor) dispute(tx domain.TransactionID, client domain.ClientID) error {
	entry, account, err := p.resolveReference(tx, client)
	if err != nil {
		return err
	}

	// Disputes do not stack: a second dispute on the same transaction
	// fails the compare-and-set below.
	if !p.ledger.Transition(tx, domain.StateClean, domain.StateDisputed) {
		return domain.ErrWrongDisputeState
	}

	// Symmetric hold: the amount moves to held whether the disputed
	// transaction was a deposit or a withdrawal.
	account.Hold(entry.Amount)

	return nil
}

func (p *Processor) resolve(tx domain.TransactionID, client domain.ClientID) error {
	entry, account, err := p.resolveReference(tx, client)
	if err != nil {
		return err
	}

	if !p.ledger.Transition(tx, domain.StateDisputed, domain.StateResolved) {
		return domain.ErrWrongDisputeState
	}

	account.Release(entry.Amount)

	return nil
}

func (p *Processor) chargeback(tx domain.TransactionID, client domain.ClientID) error {
	entry, account, err := p.resolveReference(tx, client)
	if err != nil {
		return err
	}

	if !p.ledger.Transition(tx, domain.StateDisputed, domain.StateChargedBack) {
		return domain.ErrWrongDisputeState
	}

	account.Charge(entry.Amount)
	account.Lock()

	return nil
}

// resolveReference validates a dispute-family reference: the
// transaction must be recorded, owned by client, and the owning
// account must not be locked. Accounts are never created here.
func (p *Processor) resolveReference(tx domain.TransactionID, client domain.ClientID) (*domain.LedgerEntry, *domain.Account, error) {
	entry, ok := p.ledger.Get(tx)
	if !ok {
		return nil, nil, domain.ErrUnknownTransaction
	}
	if entry.Owner != client {
		return nil, nil, domain.ErrWrongClient
	}

	account, ok := p.accounts.Get(client)
	if !ok {
		// A recorded transaction implies an existing account; treat a
		// miss as an unknown reference rather than panicking.
		return nil, nil, domain.ErrUnknownTransaction
	}
	if account.Locked {
		return nil, nil, domain.ErrAccountLocked
	}

	return entry, account, nil
}
