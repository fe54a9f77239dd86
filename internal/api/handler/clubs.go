package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vandringspris/vandringspris-data/internal/api/respond"
	"github.com/vandringspris/vandringspris-data/internal/cache"
	"github.com/vandringspris/vandringspris-data/internal/config"
	"github.com/vandringspris/vandringspris-data/internal/db"
)

// GetClubYears lists the years a club has results for, newest first.
// @Summary Years with results for a club
// @Tags clubs
// @Produce json
// @Param clubID path int true "Club id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /clubs/{clubID}/years [get]
func (h *Handler) GetClubYears(w http.ResponseWriter, r *http.Request) {
	club, err := parseClubParam(chi.URLParam(r, "clubID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_CLUB", err.Error())
		return
	}

	cacheKey := fmt.Sprintf("club:%d:years", club)
	ttl := cache.TTLClubMeta
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	years, err := db.YearsForClub(r.Context(), h.pool, club)
	if err != nil {
		respond.WriteDBError(w, err)
		return
	}
	if years == nil {
		years = []int{}
	}
	data, _ := json.Marshal(map[string]interface{}{"club": club, "years": years})

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetClubName resolves a club's display name: the registry first, then the
// eventorclubs table, then a numeric fallback.
// @Summary Club display name
// @Tags clubs
// @Produce json
// @Param clubID path int true "Club id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /clubs/{clubID}/name [get]
func (h *Handler) GetClubName(w http.ResponseWriter, r *http.Request) {
	club, err := parseClubParam(chi.URLParam(r, "clubID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_CLUB", err.Error())
		return
	}

	cacheKey := fmt.Sprintf("club:%d:name", club)
	ttl := cache.TTLClubMeta
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	name := ""
	if reg, ok := config.ClubRegistry[club]; ok {
		name = reg.Name
	}
	if name == "" {
		name, err = db.ClubName(r.Context(), h.pool, club)
		if err != nil {
			respond.WriteDBError(w, err)
			return
		}
	}
	if name == "" {
		name = fmt.Sprintf("Club %d", club)
	}
	data, _ := json.Marshal(map[string]interface{}{"club": club, "name": name})

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
