package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountActivity_Accessors(t *testing.T) {
	amount := decimal.RequireFromString("3.14")

	tests := []struct {
		name     string
		activity AccountActivity
		kind     ActivityKind
	}{
		{"deposit", Deposit{TX: 10, Client: 2, Amount: amount}, KindDeposit},
		{"withdrawal", Withdrawal{TX: 10, Client: 2, Amount: amount}, KindWithdrawal},
		{"dispute", Dispute{TX: 10, Client: 2}, KindDispute},
		{"resolve", Resolve{TX: 10, Client: 2}, KindResolve},
		{"chargeback", Chargeback{TX: 10, Client: 2}, KindChargeback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.activity.Kind() != tt.kind {
				t.Fatalf("expected kind %s, got %s", tt.kind, tt.activity.Kind())
			}
			if tt.activity.TransactionID() != 10 {
				t.Fatalf("expected tx 10, got %s", tt.activity.TransactionID())
			}
			if tt.activity.ClientID() != 2 {
				t.Fatalf("expected client 2, got %s", tt.activity.ClientID())
			}
		})
	}
}

func TestDisputeState_String(t *testing.T) {
	tests := []struct {
		state DisputeState
		want  string
	}{
		{StateClean, "clean"},
		{StateDisputed, "disputed"},
		{StateResolved, "resolved"},
		{StateChargedBack, "charged_back"},
		{DisputeState(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("DisputeState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
