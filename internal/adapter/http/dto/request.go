package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
)

// ActivityRecord is one activity in a submitted batch. The type field
// discriminates the variant; amount is only meaningful for deposits
// and withdrawals.
type ActivityRecord struct {
	Type   string           `json:"type"`
	Client uint16           `json:"client"`
	TX     uint32           `json:"tx"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// ToDomain converts the record to its domain variant.
func (r *ActivityRecord) ToDomain() (domain.AccountActivity, error) {
	client := domain.ClientID(r.Client)
	tx := domain.TransactionID(r.TX)

	switch r.Type {
	case string(domain.KindDeposit):
		if r.Amount == nil {
			return nil, fmt.Errorf("%w: deposit requires an amount", domain.ErrMalformedRecord)
		}
		return domain.Deposit{TX: tx, Client: client, Amount: *r.Amount}, nil
	case string(domain.KindWithdrawal):
		if r.Amount == nil {
			return nil, fmt.Errorf("%w: withdrawal requires an amount", domain.ErrMalformedRecord)
		}
		return domain.Withdrawal{TX: tx, Client: client, Amount: *r.Amount}, nil
	case string(domain.KindDispute):
		return domain.Dispute{TX: tx, Client: client}, nil
	case string(domain.KindResolve):
		return domain.Resolve{TX: tx, Client: client}, nil
	case string(domain.KindChargeback):
		return domain.Chargeback{TX: tx, Client: client}, nil
	default:
		return nil, fmt.Errorf("%w: unknown activity type %q", domain.ErrMalformedRecord, r.Type)
	}
}

// SubmitBatchRequest represents a request to apply a batch of
// activities in order.
type SubmitBatchRequest struct {
	Activities []ActivityRecord `json:"activities"`
}

// ToDomain converts every record, failing on the first malformed one.
func (r *SubmitBatchRequest) ToDomain() ([]domain.AccountActivity, error) {
	activities := make([]domain.AccountActivity, 0, len(r.Activities))
	for i, record := range r.Activities {
		activity, err := record.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		activities = append(activities, activity)
	}
	return activities, nil
}
