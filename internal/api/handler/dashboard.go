package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vandringspris/vandringspris-data/internal/api/respond"
	"github.com/vandringspris/vandringspris-data/internal/cache"
)

// Dashboard endpoints pass through JSON assembled by Postgres functions.
// The functions own the aggregation; the handlers only cache and serve the
// bytes.

func (h *Handler) dashboardPassthrough(w http.ResponseWriter, r *http.Request, stmt, suffix string, args ...interface{}) {
	club, err := parseClubParam(chi.URLParam(r, "clubID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_CLUB", err.Error())
		return
	}

	cacheKey := fmt.Sprintf("dashboard:%d:%s:%s", club, suffix, r.URL.RawQuery)
	ttl := cache.TTLDashboard
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var raw []byte
	callArgs := append([]interface{}{club}, args...)
	if err := h.pool.QueryRow(r.Context(), stmt, callArgs...).Scan(&raw); err != nil {
		respond.WriteDBError(w, err)
		return
	}
	if raw == nil {
		raw = []byte("null")
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// GetDashboardStats returns the club dashboard headline numbers.
// @Summary Club dashboard stats
// @Tags dashboard
// @Produce json
// @Param clubID path int true "Club id"
// @Param year query string false "Four-digit year, or all"
// @Success 200 {object} map[string]interface{}
// @Router /dashboard/{clubID}/stats [get]
func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	year, err := parseYearParam(r.URL.Query().Get("year"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_YEAR", err.Error())
		return
	}
	h.dashboardPassthrough(w, r, "rpc_index461_stats", "stats", year)
}

// GetDashboardTopCompetitors returns the club's most active competitors.
// @Summary Club top competitors
// @Tags dashboard
// @Produce json
// @Param clubID path int true "Club id"
// @Param year query string false "Four-digit year, or all"
// @Param limit query int false "Row cap"
// @Success 200 {object} map[string]interface{}
// @Router /dashboard/{clubID}/top-competitors [get]
func (h *Handler) GetDashboardTopCompetitors(w http.ResponseWriter, r *http.Request) {
	year, err := parseYearParam(r.URL.Query().Get("year"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_YEAR", err.Error())
		return
	}
	limit := 10
	if l, err := parseOptionalInt(r.URL.Query().Get("limit")); err == nil && l != nil && *l > 0 && *l <= 100 {
		limit = *l
	}
	h.dashboardPassthrough(w, r, "rpc_index461_top_competitors", "top", year, limit)
}

// GetDashboardEventsByYear returns per-year event and start counts.
// @Summary Club events by year
// @Tags dashboard
// @Produce json
// @Param clubID path int true "Club id"
// @Success 200 {object} map[string]interface{}
// @Router /dashboard/{clubID}/events-by-year [get]
func (h *Handler) GetDashboardEventsByYear(w http.ResponseWriter, r *http.Request) {
	h.dashboardPassthrough(w, r, "rpc_index461_events_by_year", "events")
}
