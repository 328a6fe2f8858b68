package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAccount_Debit(t *testing.T) {
	tests := []struct {
		name          string
		available     decimal.Decimal
		amount        decimal.Decimal
		expectErr     bool
		wantAvailable decimal.Decimal
	}{
		{
			name:          "debit less than balance",
			available:     dec("100"),
			amount:        dec("30"),
			wantAvailable: dec("70"),
		},
		{
			name:          "debit exact balance",
			available:     dec("100"),
			amount:        dec("100"),
			wantAvailable: dec("0"),
		},
		{
			name:          "debit more than balance",
			available:     dec("100"),
			amount:        dec("100.0001"),
			expectErr:     true,
			wantAvailable: dec("100"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccount(1)
			acc.Available = tt.available

			err := acc.Debit(tt.amount)

			if tt.expectErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !acc.Available.Equal(tt.wantAvailable) {
				t.Fatalf("expected available %s, got %s", tt.wantAvailable, acc.Available)
			}
		})
	}
}

func TestAccount_HoldRelease(t *testing.T) {
	acc := NewAccount(1)
	acc.Credit(dec("100"))

	acc.Hold(dec("40"))

	if !acc.Available.Equal(dec("60")) || !acc.Held.Equal(dec("40")) {
		t.Fatalf("after hold: available=%s held=%s", acc.Available, acc.Held)
	}
	if !acc.Total().Equal(dec("100")) {
		t.Fatalf("hold must not change total, got %s", acc.Total())
	}

	acc.Release(dec("40"))

	if !acc.Available.Equal(dec("100")) || !acc.Held.IsZero() {
		t.Fatalf("after release: available=%s held=%s", acc.Available, acc.Held)
	}
}

func TestAccount_HoldMayDriveAvailableNegative(t *testing.T) {
	acc := NewAccount(1)
	acc.Credit(dec("10"))

	// Disputing a withdrawal holds funds that already left the account.
	acc.Hold(dec("25"))

	if !acc.Available.Equal(dec("-15")) {
		t.Fatalf("expected available -15, got %s", acc.Available)
	}
	if !acc.Total().Equal(dec("10")) {
		t.Fatalf("expected total 10, got %s", acc.Total())
	}
}

func TestAccount_Charge(t *testing.T) {
	acc := NewAccount(1)
	acc.Credit(dec("50"))
	acc.Hold(dec("50"))

	acc.Charge(dec("50"))

	if !acc.Held.IsZero() {
		t.Fatalf("expected held 0, got %s", acc.Held)
	}
	if !acc.Total().IsZero() {
		t.Fatalf("expected total 0, got %s", acc.Total())
	}
}

func TestAccount_Snapshot(t *testing.T) {
	acc := NewAccount(7)
	acc.Credit(dec("12.5"))
	acc.Hold(dec("2.5"))
	acc.Lock()

	snap := acc.Snapshot()

	if snap.Client != 7 {
		t.Fatalf("expected client 7, got %s", snap.Client)
	}
	if !snap.Available.Equal(dec("10")) || !snap.Held.Equal(dec("2.5")) {
		t.Fatalf("unexpected balances: %+v", snap)
	}
	if !snap.Total.Equal(snap.Available.Add(snap.Held)) {
		t.Fatalf("snapshot total must equal available+held, got %s", snap.Total)
	}
	if !snap.Locked {
		t.Fatal("expected snapshot to carry locked flag")
	}
}
