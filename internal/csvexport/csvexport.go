// Package csvexport builds the downloadable result-export file. The file is
// UTF-8 with a byte order mark so Excel opens it correctly, and fields are
// quoted only when they contain a comma, a double quote, or a newline.
package csvexport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vandringspris/vandringspris-data/internal/result"
)

// BOM is prepended to every export for Excel compatibility.
const BOM = "\uFEFF"

// Headers is the fixed export column order.
var Headers = []string{
	"eventraceid",
	"eventid",
	"eventdate",
	"eventname",
	"eventform",
	"eventdistance",
	"eventclassificationid",
	"personid",
	"name",
	"personage",
	"eventclassname",
	"classtypeid",
	"klassfaktor",
	"points",
	"resulttime",
	"resulttimediff",
	"resultposition",
	"classresultnumberofstarts",
	"resultcompetitorstatus",
	"relayteamname",
	"relayleg",
	"relaylegoverallposition",
	"relayteamendposition",
	"relayteamenddiff",
	"clubparticipation",
}

// Escape quotes a field when it contains a comma, double quote, or newline;
// embedded quotes are doubled.
func Escape(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// Encode renders records as a complete CSV document including the BOM and
// header row.
func Encode(records []result.Record) string {
	var b strings.Builder
	b.WriteString(BOM)
	b.WriteString(strings.Join(Headers, ","))
	for i := range records {
		b.WriteByte('\n')
		b.WriteString(encodeRow(&records[i]))
	}
	return b.String()
}

func encodeRow(r *result.Record) string {
	fields := []string{
		strconv.Itoa(r.EventRaceID),
		strconv.Itoa(r.EventID),
		r.EventDate,
		r.EventName,
		strPtr(r.EventForm),
		strPtr(r.EventDistance),
		intPtr(r.EventClassificationID),
		strconv.Itoa(r.PersonID),
		r.DisplayName(),
		intPtr(r.PersonAge),
		strPtr(r.EventClassName),
		intPtr(r.ClassTypeID),
		floatPtr(r.ClassFactor),
		floatPtr(r.Points),
		intPtr(r.ResultTime),
		intPtr(r.ResultTimeDiff),
		intPtr(r.ResultPosition),
		intPtr(r.ClassResultNumberOfStart),
		strPtr(r.ResultCompetitorStatus),
		strPtr(r.RelayTeamName),
		intPtr(r.RelayLeg),
		intPtr(r.RelayLegOverallPosition),
		intPtr(r.RelayTeamEndPosition),
		intPtr(r.RelayTeamEndDiff),
		intPtr(r.ClubParticipation),
	}
	for i, f := range fields {
		fields[i] = Escape(f)
	}
	return strings.Join(fields, ",")
}

// Filename builds the export filename from the request scope and a
// timestamp already formatted by the caller.
func Filename(club int, personID *int, year *int, timestamp string) string {
	personPart := "all"
	if personID != nil {
		personPart = strconv.Itoa(*personID)
	}
	yearPart := "all"
	if year != nil {
		yearPart = strconv.Itoa(*year)
	}
	return fmt.Sprintf("export_%d-%s-%s_%s.csv", club, personPart, yearPart, timestamp)
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intPtr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatPtr(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
