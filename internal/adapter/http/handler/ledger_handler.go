package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payproc/internal/adapter/http/dto"
	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	GetEntry(ctx context.Context, tx domain.TransactionID) (domain.LedgerEntry, error)
	ListRejections(ctx context.Context, limit int) []usecase.Rejection
}

// LedgerHandler handles transaction and rejection lookups.
type LedgerHandler struct {
	activityUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(activityUC LedgerService) *LedgerHandler {
	return &LedgerHandler{activityUC: activityUC}
}

// GetTransaction retrieves the recorded entry for a transaction id.
func (h *LedgerHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "tx")

	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id", err.Error())
		return
	}

	entry, err := h.activityUC.GetEntry(r.Context(), domain.TransactionID(value))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// ListRejections lists recently journaled rejections, newest first.
func (h *LedgerHandler) ListRejections(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 100)

	rejections := h.activityUC.ListRejections(r.Context(), limit)

	writeJSON(w, http.StatusOK, dto.RejectionsFromDomain(rejections))
}
