package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vandringspris/vandringspris-data/internal/api/respond"
	"github.com/vandringspris/vandringspris-data/internal/cache"
	"github.com/vandringspris/vandringspris-data/internal/filter"
)

// The filter endpoints keep the statistics page's original URL shape:
// GET /api/results-stats/defaults and GET|POST /api/results-stats/filters.
// POST carries the selection as a JSON body; GET takes query parameters.

// GetDefaults returns the initial filter state for the statistics page.
// @Summary Statistics page defaults
// @Tags filters
// @Produce json
// @Success 200 {object} filter.Defaults
// @Router /results-stats/defaults [get]
func (h *Handler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	cacheKey := "filters:defaults"
	ttl := cache.TTLFilters
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	d, err := filter.DeriveDefaults(r.Context(), h.pool)
	if err != nil {
		respond.WriteDBError(w, err)
		return
	}
	data, err := json.Marshal(d)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "failed to encode response")
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetFilterOptions derives the option lists for the current selection.
// @Summary Statistics page filter options
// @Tags filters
// @Accept json
// @Produce json
// @Param year query string true "Four-digit year, or all"
// @Param club query string false "Club id, or all"
// @Success 200 {object} filter.Options
// @Failure 400 {object} respond.ErrorResponse
// @Router /results-stats/filters [get]
func (h *Handler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	var sel filter.Selection
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
			return
		}
	} else {
		sel.Year = r.URL.Query().Get("year")
		sel.Club = r.URL.Query().Get("club")
	}

	if sel.Year == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_YEAR", "year parameter is required")
		return
	}
	if _, err := parseYearParam(sel.Year); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_YEAR", err.Error())
		return
	}
	if sel.Club != "" && sel.Club != filter.All {
		if _, err := parseClubParam(sel.Club); err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_CLUB", err.Error())
			return
		}
	}

	cacheKey := fmt.Sprintf("filters:options:%s:%s", sel.Year, sel.Club)
	ttl := cache.TTLFilters
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	opts, err := filter.Derive(r.Context(), h.pool, sel)
	if err != nil {
		respond.WriteDBError(w, err)
		return
	}
	data, err := json.Marshal(opts)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "failed to encode response")
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
