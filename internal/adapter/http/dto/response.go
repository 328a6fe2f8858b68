package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// SnapshotResponse represents an account snapshot in API responses.
type SnapshotResponse struct {
	Client    uint16          `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

// SnapshotFromDomain converts a domain snapshot to a response.
func SnapshotFromDomain(s domain.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Client:    uint16(s.Client),
		Available: s.Available,
		Held:      s.Held,
		Total:     s.Total,
		Locked:    s.Locked,
	}
}

// SnapshotsFromDomain converts domain snapshots to responses.
func SnapshotsFromDomain(snapshots []domain.Snapshot) []SnapshotResponse {
	result := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = SnapshotFromDomain(s)
	}
	return result
}

// EntryResponse represents a recorded transaction in API responses.
type EntryResponse struct {
	TX           uint32          `json:"tx"`
	Client       uint16          `json:"client"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	DisputeState string          `json:"dispute_state"`
}

// EntryFromDomain converts a ledger entry to a response.
func EntryFromDomain(e domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		TX:           uint32(e.TX),
		Client:       uint16(e.Owner),
		Kind:         string(e.Kind),
		Amount:       e.Amount,
		DisputeState: e.State.String(),
	}
}

// OutcomeResponse reports the fate of one batch record.
type OutcomeResponse struct {
	Index   int    `json:"index"`
	TX      uint32 `json:"tx"`
	Client  uint16 `json:"client"`
	Kind    string `json:"kind"`
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

// BatchResponse summarizes an applied batch.
type BatchResponse struct {
	Applied  int               `json:"applied"`
	Rejected int               `json:"rejected"`
	Outcomes []OutcomeResponse `json:"outcomes"`
}

// BatchFromResult converts a use case batch result to a response.
func BatchFromResult(result usecase.BatchResult) BatchResponse {
	outcomes := make([]OutcomeResponse, len(result.Outcomes))
	for i, o := range result.Outcomes {
		outcomes[i] = OutcomeResponse{
			Index:   o.Index,
			TX:      uint32(o.TX),
			Client:  uint16(o.Client),
			Kind:    string(o.Kind),
			Applied: o.Applied,
			Reason:  o.Reason,
		}
	}
	return BatchResponse{
		Applied:  result.Applied,
		Rejected: result.Rejected,
		Outcomes: outcomes,
	}
}

// RejectionResponse represents a journaled rejection.
type RejectionResponse struct {
	ID         string    `json:"id"`
	TX         uint32    `json:"tx"`
	Client     uint16    `json:"client"`
	Kind       string    `json:"kind"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}

// RejectionsFromDomain converts journaled rejections to responses.
func RejectionsFromDomain(rejections []usecase.Rejection) []RejectionResponse {
	result := make([]RejectionResponse, len(rejections))
	for i, r := range rejections {
		result[i] = RejectionResponse{
			ID:         r.ID,
			TX:         uint32(r.TX),
			Client:     uint16(r.Client),
			Kind:       string(r.Kind),
			Reason:     r.Reason,
			RejectedAt: r.At,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
