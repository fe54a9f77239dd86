package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vandringspris/vandringspris-data/internal/api/respond"
	"github.com/vandringspris/vandringspris-data/internal/config"
	"github.com/vandringspris/vandringspris-data/internal/csvexport"
	"github.com/vandringspris/vandringspris-data/internal/db"
)

// ExportCSV streams the full result set for a scope as a CSV download.
// The export always walks every page; a truncated export would silently
// understate totals.
// @Summary Export results as CSV
// @Tags export
// @Produce text/csv
// @Param club query int true "Club id"
// @Param year query string false "Four-digit year, or all"
// @Param person query string false "Person id, or all"
// @Success 200 {string} string "CSV body with UTF-8 BOM"
// @Failure 400 {object} respond.ErrorResponse
// @Router /export.csv [get]
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
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

	records, err := db.ResultsEnrichedAll(r.Context(), h.pool, db.ResultsQuery{
		Club:     &club,
		Year:     year,
		PersonID: person,
	}, config.ExportPageLimit)
	if err != nil {
		respond.WriteDBError(w, err)
		return
	}

	body := csvexport.Encode(records)
	filename := csvexport.Filename(club, person, year, time.Now().Format("20060102-150405"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
