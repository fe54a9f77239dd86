package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vandringspris/vandringspris-data/internal/api/respond"
	"github.com/vandringspris/vandringspris-data/internal/cache"
	"github.com/vandringspris/vandringspris-data/internal/config"
	"github.com/vandringspris/vandringspris-data/internal/db"
	"github.com/vandringspris/vandringspris-data/internal/result"
)

// resultsPage is the paged response for GET /api/v1/results.
type resultsPage struct {
	Results  []result.Record `json:"results"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	HasMore  bool            `json:"hasMore"`
}

// refineRecords applies the form and distance filters. "" and "all" mean
// unrestricted; form matches the normalized form, distance the raw value.
func refineRecords(records []result.Record, form, distance string) []result.Record {
	if (form == "" || form == "all") && (distance == "" || distance == "all") {
		return records
	}
	out := make([]result.Record, 0, len(records))
	for i := range records {
		r := &records[i]
		if form != "" && form != "all" && r.Form() != form {
			continue
		}
		if distance != "" && distance != "all" {
			if r.EventDistance == nil || *r.EventDistance != distance {
				continue
			}
		}
		out = append(out, *r)
	}
	return out
}

// GetResults returns one page of enriched result rows for a club.
// @Summary List enriched results
// @Description Returns enriched result rows filtered by club, year, gender, age span, championship flag, and person, paged.
// @Tags results
// @Produce json
// @Param club query int true "Club id"
// @Param year query string false "Four-digit year, or all"
// @Param gender query string false "F or M"
// @Param ageMin query int false "Minimum age"
// @Param ageMax query int false "Maximum age"
// @Param championship query bool false "Championship events only"
// @Param person query string false "Person id, or all"
// @Param form query string false "Event form, or all"
// @Param distance query string false "Event distance, or all"
// @Param page query int false "Zero-based page number"
// @Success 200 {object} resultsPage
// @Failure 400 {object} respond.ErrorResponse
// @Router /results [get]
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	qp := r.URL.Query()

	club, err := parseClubParam(qp.Get("club"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_CLUB", err.Error())
		return
	}
	year, err := parseYearParam(qp.Get("year"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_YEAR", err.Error())
		return
	}
	person, err := parsePersonParam(qp.Get("person"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PERSON", err.Error())
		return
	}
	ageMin, err := parseOptionalInt(qp.Get("ageMin"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_AGE", err.Error())
		return
	}
	ageMax, err := parseOptionalInt(qp.Get("ageMax"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_AGE", err.Error())
		return
	}
	page := 0
	if p, err := parseOptionalInt(qp.Get("page")); err == nil && p != nil && *p > 0 {
		page = *p
	}

	var gender *string
	if g := qp.Get("gender"); g == "F" || g == "M" {
		gender = &g
	}
	var champ *bool
	if parseBoolParam(qp.Get("championship")) {
		t := true
		champ = &t
	}

	q := db.ResultsQuery{
		Club:             &club,
		Year:             year,
		Gender:           gender,
		AgeMin:           ageMin,
		AgeMax:           ageMax,
		OnlyChampionship: champ,
		PersonID:         person,
		Limit:            config.ResultsPageLimit,
		Offset:           page * config.ResultsPageLimit,
	}

	cacheKey := fmt.Sprintf("results:%s", r.URL.RawQuery)
	ttl := cache.TTLResults
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	records, err := db.ResultsEnriched(r.Context(), h.pool, q)
	if err != nil {
		respond.WriteDBError(w, err)
		return
	}

	// Form and distance are refined here rather than in the RPC; the page
	// boundary stays on the raw row count.
	hasMore := len(records) == config.ResultsPageLimit
	records = refineRecords(records, qp.Get("form"), qp.Get("distance"))

	resp := resultsPage{
		Results:  records,
		Page:     page,
		PageSize: config.ResultsPageLimit,
		HasMore:  hasMore,
	}
	if resp.Results == nil {
		resp.Results = []result.Record{}
	}
	data, err := json.Marshal(resp)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "failed to encode response")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
