package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payproc/internal/adapter/http/dto"
	"github.com/iho/payproc/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	GetAccount(ctx context.Context, client domain.ClientID) (domain.Snapshot, error)
	ListAccounts(ctx context.Context) []domain.Snapshot
}

// AccountHandler handles account snapshot requests.
type AccountHandler struct {
	activityUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(activityUC AccountService) *AccountHandler {
	return &AccountHandler{activityUC: activityUC}
}

// Get retrieves the snapshot for one client.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := parseClientParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", err.Error())
		return
	}

	snapshot, err := h.activityUC.GetAccount(r.Context(), client)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotFromDomain(snapshot))
}

// List retrieves snapshots of every known account.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	snapshots := h.activityUC.ListAccounts(r.Context())

	writeJSON(w, http.StatusOK, dto.SnapshotsFromDomain(snapshots))
}

func parseClientParam(r *http.Request) (domain.ClientID, error) {
	raw := chi.URLParam(r, "client")

	value, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, err
	}

	return domain.ClientID(value), nil
}
