package ledger

import (
	"sort"

	"github.com/iho/payproc/internal/domain"
)

// AccountStore maps client ids to their accounts. Accounts are created
// lazily on the first deposit or withdrawal referencing the client and
// live until the end of the run.
type AccountStore struct {
	accounts map[domain.ClientID]*domain.Account
}

// NewAccountStore creates an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[domain.ClientID]*domain.Account),
	}
}

// GetOrCreate returns the account for client, creating it with zero
// balances when the client has not been seen before.
func (s *AccountStore) GetOrCreate(client domain.ClientID) *domain.Account {
	if account, ok := s.accounts[client]; ok {
		return account
	}

	account := domain.NewAccount(client)
	s.accounts[client] = account

	return account
}

// Get returns the account for client without creating one. Dispute,
// resolve and chargeback handling must never instantiate accounts.
func (s *AccountStore) Get(client domain.ClientID) (*domain.Account, bool) {
	account, ok := s.accounts[client]
	return account, ok
}

// Len returns the number of known accounts.
func (s *AccountStore) Len() int {
	return len(s.accounts)
}

// Snapshots returns the export view of every known account, ordered by
// client id so output is deterministic for a given input.
func (s *AccountStore) Snapshots() []domain.Snapshot {
	snapshots := make([]domain.Snapshot, 0, len(s.accounts))
	for _, account := range s.accounts {
		snapshots = append(snapshots, account.Snapshot())
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Client < snapshots[j].Client
	})

	return snapshots
}
