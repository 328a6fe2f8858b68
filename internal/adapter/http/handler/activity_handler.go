package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/payproc/internal/adapter/http/dto"
	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// ActivityService defines the behavior needed by ActivityHandler.
type ActivityService interface {
	SubmitBatch(ctx context.Context, activities []domain.AccountActivity) usecase.BatchResult
}

// ActivityHandler handles activity submission requests.
type ActivityHandler struct {
	activityUC ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityUC ActivityService) *ActivityHandler {
	return &ActivityHandler{activityUC: activityUC}
}

// SubmitBatch applies a batch of activities in order. Per-record
// rejections are reported in the response, not as request failures.
func (h *ActivityHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.Activities) == 0 {
		writeError(w, http.StatusBadRequest, "empty batch", "")
		return
	}

	activities, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed record", err.Error())
		return
	}

	result := h.activityUC.SubmitBatch(r.Context(), activities)

	writeJSON(w, http.StatusOK, dto.BatchFromResult(result))
}
