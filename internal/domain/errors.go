package domain

import "errors"

// Rejection reasons. None of these is fatal for a run: the processor
// turns each into a no-op for the offending record and carries on.
var (
	// ErrNonPositiveAmount rejects deposits and withdrawals whose
	// amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrDuplicateTransaction rejects a deposit or withdrawal reusing
	// an already recorded transaction id.
	ErrDuplicateTransaction = errors.New("transaction id already recorded")

	// ErrUnknownTransaction rejects a dispute-family record referencing
	// a transaction id never seen as a deposit or withdrawal.
	ErrUnknownTransaction = errors.New("unknown transaction id")

	// ErrWrongClient rejects a dispute-family record whose client does
	// not own the referenced transaction.
	ErrWrongClient = errors.New("transaction owned by a different client")

	// ErrWrongDisputeState rejects a dispute-family record that is not
	// a legal transition for the referenced transaction.
	ErrWrongDisputeState = errors.New("transaction not in required dispute state")

	// ErrInsufficientFunds rejects a withdrawal exceeding the available
	// balance.
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// ErrAccountLocked rejects any activity against a locked account.
	ErrAccountLocked = errors.New("account is locked")

	// ErrMalformedRecord marks an input record that could not be parsed
	// into an account activity. Sources wrap it so the processor can
	// skip the record and keep going.
	ErrMalformedRecord = errors.New("malformed activity record")
)

// ErrAccountNotFound is returned by query operations for clients that
// were never referenced by a deposit or withdrawal.
var ErrAccountNotFound = errors.New("account not found")

