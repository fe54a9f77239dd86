// Package scoring implements the Vandringspris aggregation core: grouping
// result rows by competitor and computing top-N point totals and race counts
// for the award tables.
package scoring

import (
	"sort"
	"strings"

	"github.com/vandringspris/vandringspris-data/internal/locale"
	"github.com/vandringspris/vandringspris-data/internal/result"
)

// TopNAll is the sentinel meaning "no cap" for tables that sum every
// qualifying result (the championship table).
const TopNAll = 9999

// StatusFilter selects which competitor statuses qualify.
type StatusFilter int

const (
	// StatusOKOnly admits approved runs. Used by every points table.
	StatusOKOnly StatusFilter = iota
	// StatusOKOrMispunch also admits mispunched runs. A mispunch is still a
	// start, so it counts for the race-count table.
	StatusOKOrMispunch
)

// Params are the five filter parameters that define one award table. They
// are stored on every leaderboard row so a drill-down can reproduce the
// exact record set behind the row's value.
type Params struct {
	TopN             int          `json:"topN"`
	AgeMin           *int         `json:"ageMin"`
	AgeMax           *int         `json:"ageMax"`
	OnlyChampionship bool         `json:"onlyChampionship"`
	Status           StatusFilter `json:"status"`
}

// --------------------------------------------------------------------------
// Person grouping
// --------------------------------------------------------------------------

// Identity is the person bucket key. Registered competitors key on their
// person id; unregistered rows (person id 0) key on the normalized XML name
// so distinct anonymous competitors do not collapse into one bucket.
type Identity struct {
	PersonID int
	NameKey  string
}

// IdentityOf derives the bucket key for a record.
func IdentityOf(r *result.Record) Identity {
	if r.PersonID > 0 {
		return Identity{PersonID: r.PersonID}
	}
	return Identity{PersonID: 0, NameKey: normalizeName(r.DisplayName())}
}

// IdentityOfName derives the bucket key for an unregistered competitor by
// display name. Used when a drill-down arrives without a person id.
func IdentityOfName(name string) Identity {
	return Identity{NameKey: normalizeName(name)}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Group is one competitor's bucket.
type Group struct {
	PersonID   int
	Name       string
	FamilyName string
	Items      []result.Record
}

// GroupByPerson buckets records by competitor identity. No record is
// dropped and the grouping is insensitive to input order beyond the
// per-bucket item order.
func GroupByPerson(records []result.Record) map[Identity]*Group {
	groups := make(map[Identity]*Group)
	for i := range records {
		r := &records[i]
		id := IdentityOf(r)
		g, ok := groups[id]
		if !ok {
			g = &Group{
				PersonID:   r.PersonID,
				Name:       r.DisplayName(),
				FamilyName: r.FamilyName(),
			}
			groups[id] = g
		}
		g.Items = append(g.Items, *r)
	}
	return groups
}

// --------------------------------------------------------------------------
// Scoring
// --------------------------------------------------------------------------

// Qualifying returns the records passing the status, championship, and age
// filters of p, in input order. Note the age rule: a record with unknown age
// fails any table that sets a lower age bound, even a bound of 0.
func Qualifying(items []result.Record, p Params) []result.Record {
	out := make([]result.Record, 0, len(items))
	for i := range items {
		r := &items[i]
		switch p.Status {
		case StatusOKOrMispunch:
			if !r.StatusCounted() {
				continue
			}
		default:
			if !r.StatusOK() {
				continue
			}
		}
		if p.OnlyChampionship && !r.IsChampionship() {
			continue
		}
		if p.AgeMin != nil && (r.PersonAge == nil || *r.PersonAge < *p.AgeMin) {
			continue
		}
		if p.AgeMax != nil && r.Age() > *p.AgeMax {
			continue
		}
		out = append(out, *r)
	}
	return out
}

// Score computes the summed points of the competitor's best TopN qualifying
// results, returning the sum and the exact contributing records. Records
// without a numeric points value stay in the group but never score. Ties in
// points keep input order, so the contributing set is deterministic.
func Score(items []result.Record, p Params) (float64, []result.Record) {
	qualifying := Qualifying(items, p)
	scored := make([]result.Record, 0, len(qualifying))
	for i := range qualifying {
		if qualifying[i].Points != nil {
			scored = append(scored, qualifying[i])
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].Points > *scored[j].Points
	})
	if p.TopN > 0 && len(scored) > p.TopN {
		scored = scored[:p.TopN]
	}
	var sum float64
	for i := range scored {
		sum += *scored[i].Points
	}
	return sum, scored
}

// CountRaces counts the competitor's qualifying results. No points, no
// truncation; the contributing set is every qualifying record.
func CountRaces(items []result.Record, p Params) (float64, []result.Record) {
	qualifying := Qualifying(items, p)
	return float64(len(qualifying)), qualifying
}

// --------------------------------------------------------------------------
// Leaderboards
// --------------------------------------------------------------------------

// Kind distinguishes point-sum tables from the race-count table.
type Kind string

const (
	KindPoints    Kind = "points"
	KindRaceCount Kind = "raceCount"
)

// Table defines one award table.
type Table struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Kind   Kind   `json:"kind"`
	Params Params `json:"params"`
}

// Row is one leaderboard entry. Contributing is the exact record set behind
// Value; Params echoes the table parameters so a fresh drill-down query can
// reproduce it.
type Row struct {
	PersonID     int             `json:"personid"`
	Name         string          `json:"name"`
	Value        float64         `json:"value"`
	Contributing []result.Record `json:"contributing,omitempty"`
	Params       Params          `json:"params"`
	Kind         Kind            `json:"kind"`

	familyName string
}

// Leaderboard computes the ranked rows of one table over already-scoped
// records. Competitors with no qualifying record are omitted entirely.
func Leaderboard(records []result.Record, tbl Table) []Row {
	groups := GroupByPerson(records)
	rows := make([]Row, 0, len(groups))
	for _, g := range groups {
		if len(Qualifying(g.Items, tbl.Params)) == 0 {
			continue
		}
		var value float64
		var contributing []result.Record
		if tbl.Kind == KindRaceCount {
			value, contributing = CountRaces(g.Items, tbl.Params)
		} else {
			value, contributing = Score(g.Items, tbl.Params)
		}
		rows = append(rows, Row{
			PersonID:     g.PersonID,
			Name:         g.Name,
			Value:        value,
			Contributing: contributing,
			Params:       tbl.Params,
			Kind:         tbl.Kind,
			familyName:   g.FamilyName,
		})
	}
	sortRows(rows, tbl.Kind)
	return rows
}

// sortRows orders by value descending. The race-count table historically
// breaks ties on family name; the points tables have no documented secondary
// key, so name ascending keeps the order deterministic. Both use Swedish
// collation.
func sortRows(rows []Row, kind Kind) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			return rows[i].Value > rows[j].Value
		}
		if kind == KindRaceCount {
			return locale.Less(rows[i].familyName, rows[j].familyName)
		}
		return locale.Less(rows[i].Name, rows[j].Name)
	})
}

// Drilldown re-applies a row's parameters to a person's full record set,
// reproducing the contributing records byte for byte in content. Used when
// the drill-down is served by a fresh query instead of cached rows.
func Drilldown(items []result.Record, p Params, kind Kind) []result.Record {
	if kind == KindRaceCount {
		_, contributing := CountRaces(items, p)
		return contributing
	}
	_, contributing := Score(items, p)
	return contributing
}
