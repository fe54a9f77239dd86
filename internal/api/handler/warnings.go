package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vandringspris/vandringspris-data/internal/api/respond"
	"github.com/vandringspris/vandringspris-data/internal/warnings"
)

// GetWarnings lists import warnings, newest first.
// @Summary List import warnings
// @Tags warnings
// @Produce json
// @Param includeHidden query bool false "Include moderated warnings"
// @Success 200 {object} map[string]interface{}
// @Router /warnings [get]
func (h *Handler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	includeHidden := parseBoolParam(r.URL.Query().Get("includeHidden"))

	list, err := warnings.List(r.Context(), h.pool, includeHidden)
	if err != nil {
		respond.WriteDBError(w, err)
		return
	}
	if list == nil {
		list = []warnings.Warning{}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"warnings": list,
		"count":    len(list),
	})
}

// hideWarningsRequest is the POST body for the bulk hide endpoint.
type hideWarningsRequest struct {
	IDs  []int `json:"ids"`
	Hide bool  `json:"hide"`
}

// HideWarnings applies the hide flag to a batch of warnings, row by row.
// A failed row is reported but does not abort the batch.
// @Summary Hide or unhide warnings
// @Tags warnings
// @Accept json
// @Produce json
// @Param body body hideWarningsRequest true "Warning ids and target flag"
// @Success 200 {object} warnings.BatchResult
// @Failure 400 {object} respond.ErrorResponse
// @Router /warnings/hide [post]
func (h *Handler) HideWarnings(w http.ResponseWriter, r *http.Request) {
	var req hideWarningsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		return
	}
	if len(req.IDs) == 0 {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_IDS", "ids is required")
		return
	}

	res := warnings.BatchSetHide(r.Context(), h.pool, req.IDs, req.Hide)
	slog.Info("warning moderation", "hide", req.Hide, "summary", res.Summary())

	respond.WriteJSONObject(w, http.StatusOK, res)
}
