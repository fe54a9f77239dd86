package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vandringspris/vandringspris-data/internal/api/respond"
	"github.com/vandringspris/vandringspris-data/internal/cache"
	"github.com/vandringspris/vandringspris-data/internal/config"
	"github.com/vandringspris/vandringspris-data/internal/db"
	"github.com/vandringspris/vandringspris-data/internal/result"
	"github.com/vandringspris/vandringspris-data/internal/scoring"
)

// leaderboardTable is one award table with its ranked rows.
type leaderboardTable struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Kind  scoring.Kind  `json:"kind"`
	Rows  []scoring.Row `json:"rows"`
}

// leaderboardResponse is the full award table set for one club/year scope.
type leaderboardResponse struct {
	Club   int                `json:"club"`
	Year   *int               `json:"year"`
	Tables []leaderboardTable `json:"tables"`
}

// fetchScope pulls every result row for a club/year scope, walking pages so
// tables never score a truncated record set.
func (h *Handler) fetchScope(r *http.Request, club int, year *int) ([]result.Record, error) {
	return db.ResultsEnrichedAll(r.Context(), h.pool, db.ResultsQuery{
		Club: &club,
		Year: year,
	}, config.ExportPageLimit)
}

// GetLeaderboards computes every award table for a club/year scope.
// @Summary Award tables
// @Description Computes the full set of award tables (race counts and top-N point sums) for a club, optionally restricted to one year.
// @Tags leaderboards
// @Produce json
// @Param club query int true "Club id"
// @Param year query string false "Four-digit year, or all"
// @Success 200 {object} leaderboardResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /leaderboards [get]
func (h *Handler) GetLeaderboards(w http.ResponseWriter, r *http.Request) {
	club, err := parseClubParam(r.URL.Query().Get("club"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_CLUB", err.Error())
		return
	}
	year, err := parseYearParam(r.URL.Query().Get("year"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_YEAR", err.Error())
		return
	}

	cacheKey := fmt.Sprintf("leaderboards:%d:%s", club, r.URL.Query().Get("year"))
	ttl := cache.TTLLeaderboards
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	records, err := h.fetchScope(r, club, year)
	if err != nil {
		respond.WriteDBError(w, err)
		return
	}

	resp := leaderboardResponse{Club: club, Year: year}
	for _, tbl := range scoring.Tables {
		rows := scoring.Leaderboard(records, tbl)
		// The board view carries values only; the contributing record sets
		// are served by the drilldown endpoint.
		for i := range rows {
			rows[i].Contributing = nil
		}
		if rows == nil {
			rows = []scoring.Row{}
		}
		resp.Tables = append(resp.Tables, leaderboardTable{
			ID:    tbl.ID,
			Title: tbl.Title,
			Kind:  tbl.Kind,
			Rows:  rows,
		})
	}

	data, err := json.Marshal(resp)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "failed to encode response")
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// drilldownResponse is the contributing record set behind one row value.
type drilldownResponse struct {
	Table    string          `json:"table"`
	PersonID int             `json:"personid"`
	Name     string          `json:"name"`
	Value    float64         `json:"value"`
	Records  []result.Record `json:"records"`
}

// GetLeaderboardDrilldown reproduces the exact record set behind one
// leaderboard value by re-applying the table's parameters to the person's
// rows in the same scope.
// @Summary Award table drill-down
// @Tags leaderboards
// @Produce json
// @Param club query int true "Club id"
// @Param year query string false "Four-digit year, or all"
// @Param table query string true "Table id"
// @Param person query string false "Person id (registered competitors)"
// @Param name query string false "Competitor name (unregistered competitors)"
// @Success 200 {object} drilldownResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /leaderboards/drilldown [get]
func (h *Handler) GetLeaderboardDrilldown(w http.ResponseWriter, r *http.Request) {
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
	tbl, ok := scoring.TableByID(qp.Get("table"))
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TABLE", "unknown table id")
		return
	}
	person, err := parsePersonParam(qp.Get("person"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PERSON", err.Error())
		return
	}
	name := strings.TrimSpace(qp.Get("name"))
	if person == nil && name == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PERSON", "person or name is required")
		return
	}

	records, err := h.fetchScope(r, club, year)
	if err != nil {
		respond.WriteDBError(w, err)
		return
	}

	groups := scoring.GroupByPerson(records)
	var target scoring.Identity
	if person != nil {
		target = scoring.Identity{PersonID: *person}
	} else {
		target = scoring.IdentityOfName(name)
	}
	g, ok := groups[target]
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no results for that competitor in this scope")
		return
	}

	contributing := scoring.Drilldown(g.Items, tbl.Params, tbl.Kind)
	var value float64
	if tbl.Kind == scoring.KindRaceCount {
		value, _ = scoring.CountRaces(g.Items, tbl.Params)
	} else {
		value, _ = scoring.Score(g.Items, tbl.Params)
	}
	if contributing == nil {
		contributing = []result.Record{}
	}

	respond.WriteJSONObject(w, http.StatusOK, drilldownResponse{
		Table:    tbl.ID,
		PersonID: g.PersonID,
		Name:     g.Name,
		Value:    value,
		Records:  contributing,
	})
}
