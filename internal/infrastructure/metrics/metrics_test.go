package metrics

import (
	"testing"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/ledger"
)

// The metrics collector must satisfy the processing observer contract.
var _ ledger.Observer = (*Metrics)(nil)

func TestReasonLabel(t *testing.T) {
	tests := []struct {
		reason error
		want   string
	}{
		{domain.ErrNonPositiveAmount, "non_positive_amount"},
		{domain.ErrDuplicateTransaction, "duplicate_transaction"},
		{domain.ErrUnknownTransaction, "unknown_transaction"},
		{domain.ErrWrongClient, "wrong_client"},
		{domain.ErrWrongDisputeState, "wrong_dispute_state"},
		{domain.ErrInsufficientFunds, "insufficient_funds"},
		{domain.ErrAccountLocked, "account_locked"},
		{domain.ErrMalformedRecord, "malformed_record"},
		{errTest, "other"},
	}

	for _, tt := range tests {
		if got := ReasonLabel(tt.reason); got != tt.want {
			t.Errorf("ReasonLabel(%v) = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

type testError struct{}

func (testError) Error() string { return "test" }

var errTest = testError{}
