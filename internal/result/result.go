// Package result defines the canonical result record shared by the scoring,
// filter, and export layers. The backend exposes the same row shape from
// several views and RPC functions with minor per-revision drift; everything
// is adapted into this one type so downstream code never sees the raw shapes.
package result

import "strings"

// Competitor status values as stored by the backend. Any other string is
// carried through unchanged but never counts toward totals.
const (
	StatusOK          = "OK"
	StatusMispunch    = "Mispunch"
	StatusDidNotStart = "DidNotStart"
	StatusCancelled   = "Cancelled"
)

// FormIndividual is the normalized form for rows where eventform is null or
// blank.
const FormIndividual = "Individual"

// Record is one competitor's outcome in one race.
type Record struct {
	EventRaceID int    `json:"eventraceid"`
	EventID     int    `json:"eventid"`
	EventDate   string `json:"eventdate"`
	EventName   string `json:"eventname"`

	EventForm             *string `json:"eventform"`
	EventDistance         *string `json:"eventdistance"`
	EventClassificationID *int    `json:"eventclassificationid"`
	DisciplineID          *int    `json:"disciplineid"`

	// PersonID 0 means an unregistered competitor known only through the
	// result XML; XMLPersonName then carries whatever name the file had.
	PersonID         int     `json:"personid"`
	PersonNameGiven  *string `json:"personnamegiven"`
	PersonNameFamily *string `json:"personnamefamily"`
	XMLPersonName    *string `json:"xmlpersonname,omitempty"`
	PersonAge        *int    `json:"personage"`
	PersonSex        *string `json:"personsex"`

	EventClassName           *string  `json:"eventclassname"`
	ClassTypeID              *int     `json:"classtypeid"`
	ClassFactor              *float64 `json:"klassfaktor"`
	Points                   *float64 `json:"points"`
	ResultTime               *int     `json:"resulttime"`
	ResultTimeDiff           *int     `json:"resulttimediff"`
	ResultPosition           *int     `json:"resultposition"`
	ClassResultNumberOfStart *int     `json:"classresultnumberofstarts"`
	ResultCompetitorStatus   *string  `json:"resultcompetitorstatus"`

	RelayTeamName           *string `json:"relayteamname"`
	RelayLeg                *int    `json:"relayleg"`
	RelayLegOverallPosition *int    `json:"relaylegoverallposition"`
	RelayTeamEndPosition    *int    `json:"relayteamendposition"`
	RelayTeamEndDiff        *int    `json:"relayteamenddiff"`
	RelayTeamEndStatus      *string `json:"relayteamendstatus,omitempty"`

	ClubParticipation *int `json:"clubparticipation"`
}

// Status returns the competitor status, empty string when missing.
func (r *Record) Status() string {
	if r.ResultCompetitorStatus == nil {
		return ""
	}
	return *r.ResultCompetitorStatus
}

// StatusOK reports whether the result counted as a completed, approved run.
func (r *Record) StatusOK() bool {
	return r.Status() == StatusOK
}

// StatusCounted reports whether the result counts toward race totals.
// Mispunched runs are starts even though they earn no points; the backend
// has stored both "Mispunch" and "MisPunch" over the years.
func (r *Record) StatusCounted() bool {
	s := r.Status()
	return s == StatusOK || strings.EqualFold(s, StatusMispunch)
}

// IsChampionship reports whether the event is classified as a championship.
func (r *Record) IsChampionship() bool {
	return r.EventClassificationID != nil && *r.EventClassificationID == 1
}

// Age returns the competitor's age, with missing age treated as 0. That is
// the documented behavior for age-bounded tables: an unknown age fails any
// lower bound above zero.
func (r *Record) Age() int {
	if r.PersonAge == nil {
		return 0
	}
	return *r.PersonAge
}

// Form returns the event form, normalizing null/blank to "Individual".
func (r *Record) Form() string {
	if r.EventForm == nil {
		return FormIndividual
	}
	if f := strings.TrimSpace(*r.EventForm); f != "" {
		return f
	}
	return FormIndividual
}

// DisplayName builds the competitor's display name: given + family trimmed,
// falling back to the raw XML name, then "-".
func (r *Record) DisplayName() string {
	given, family := "", ""
	if r.PersonNameGiven != nil {
		given = *r.PersonNameGiven
	}
	if r.PersonNameFamily != nil {
		family = *r.PersonNameFamily
	}
	if name := strings.TrimSpace(given + " " + family); name != "" {
		return name
	}
	if r.XMLPersonName != nil {
		if name := strings.TrimSpace(*r.XMLPersonName); name != "" {
			return name
		}
	}
	return "-"
}

// FamilyName returns the family name or "" when missing. Used as the
// secondary sort key for the race-count table.
func (r *Record) FamilyName() string {
	if r.PersonNameFamily == nil {
		return ""
	}
	return strings.TrimSpace(*r.PersonNameFamily)
}
