package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vandringspris/vandringspris-data/internal/result"
	"github.com/vandringspris/vandringspris-data/internal/scoring"
)

func intp(n int) *int { return &n }
func floatp(f float64) *float64 { return &f }
func strp(s string) *string { return &s }

type rec struct {
	person  int
	given   string
	family  string
	xmlName string
	points  *float64
	status  string
	age     *int
	champ   bool
}

func build(rs ...rec) []result.Record {
	out := make([]result.Record, 0, len(rs))
	for i, r := range rs {
		rr := result.Record{
			EventRaceID:            1000 + i,
			EventID:                2000 + i,
			EventDate:              "2025-05-01",
			EventName:              "Kretsträff",
			PersonID:               r.person,
			Points:                 r.points,
			ResultCompetitorStatus: strp(r.status),
			PersonAge:              r.age,
		}
		if r.given != "" {
			rr.PersonNameGiven = strp(r.given)
		}
		if r.family != "" {
			rr.PersonNameFamily = strp(r.family)
		}
		if r.xmlName != "" {
			rr.XMLPersonName = strp(r.xmlName)
		}
		if r.champ {
			rr.EventClassificationID = intp(1)
		} else {
			rr.EventClassificationID = intp(3)
		}
		out = append(out, rr)
	}
	return out
}

func ok(person int, points float64) rec {
	return rec{person: person, given: "Anna", family: "Svensson", points: floatp(points), status: result.StatusOK, age: intp(30)}
}

// --------------------------------------------------------------------------
// Grouping
// --------------------------------------------------------------------------

func TestGroupByPerson(t *testing.T) {
	t.Run("Order Independence", func(t *testing.T) {
		records := build(ok(1, 100), ok(2, 90), ok(1, 80), ok(2, 70), ok(3, 60))
		reversed := make([]result.Record, len(records))
		for i := range records {
			reversed[len(records)-1-i] = records[i]
		}

		a := scoring.GroupByPerson(records)
		b := scoring.GroupByPerson(reversed)

		require.Len(t, a, 3)
		require.Len(t, b, 3)
		for id, g := range a {
			assert.Len(t, b[id].Items, len(g.Items))
		}
	})

	t.Run("No Records Dropped", func(t *testing.T) {
		records := build(ok(1, 100), ok(1, 90), ok(2, 80))
		groups := scoring.GroupByPerson(records)
		total := 0
		for _, g := range groups {
			total += len(g.Items)
		}
		assert.Equal(t, len(records), total)
	})

	t.Run("Unregistered Buckets By Normalized Name", func(t *testing.T) {
		records := build(
			rec{person: 0, xmlName: " Anna  Svensson ", points: floatp(50), status: result.StatusOK},
			rec{person: 0, xmlName: "anna svensson", points: floatp(40), status: result.StatusOK},
			rec{person: 0, xmlName: "Bo Ek", points: floatp(30), status: result.StatusOK},
		)
		groups := scoring.GroupByPerson(records)
		require.Len(t, groups, 2)

		anna := groups[scoring.IdentityOfName("Anna Svensson")]
		require.NotNil(t, anna)
		assert.Len(t, anna.Items, 2)
	})

	t.Run("Registered Never Collides With Unregistered", func(t *testing.T) {
		records := build(
			rec{person: 7, given: "Bo", family: "Ek", points: floatp(50), status: result.StatusOK},
			rec{person: 0, xmlName: "Bo Ek", points: floatp(40), status: result.StatusOK},
		)
		groups := scoring.GroupByPerson(records)
		assert.Len(t, groups, 2)
	})
}

// --------------------------------------------------------------------------
// Qualifying filters
// --------------------------------------------------------------------------

func TestQualifying(t *testing.T) {
	t.Run("Status OK Only", func(t *testing.T) {
		records := build(
			rec{person: 1, points: floatp(100), status: result.StatusOK},
			rec{person: 1, points: floatp(90), status: result.StatusMispunch},
			rec{person: 1, points: floatp(80), status: result.StatusDidNotStart},
		)
		q := scoring.Qualifying(records, scoring.Params{Status: scoring.StatusOKOnly})
		assert.Len(t, q, 1)
	})

	t.Run("Mispunch Counts As Start", func(t *testing.T) {
		records := build(
			rec{person: 1, points: floatp(100), status: result.StatusOK},
			rec{person: 1, status: result.StatusMispunch},
			rec{person: 1, status: "MisPunch"},
			rec{person: 1, status: result.StatusCancelled},
		)
		q := scoring.Qualifying(records, scoring.Params{Status: scoring.StatusOKOrMispunch})
		assert.Len(t, q, 3)
	})

	t.Run("Championship Filter", func(t *testing.T) {
		records := build(
			rec{person: 1, points: floatp(100), status: result.StatusOK, champ: true},
			rec{person: 1, points: floatp(90), status: result.StatusOK},
		)
		q := scoring.Qualifying(records, scoring.Params{OnlyChampionship: true, Status: scoring.StatusOKOnly})
		require.Len(t, q, 1)
		assert.True(t, q[0].IsChampionship())
	})

	t.Run("Age Bounds Inclusive", func(t *testing.T) {
		p := scoring.Params{AgeMin: intp(0), AgeMax: intp(16), Status: scoring.StatusOKOnly}
		records := build(
			rec{person: 1, points: floatp(10), status: result.StatusOK, age: intp(16)},
			rec{person: 1, points: floatp(10), status: result.StatusOK, age: intp(17)},
			rec{person: 1, points: floatp(10), status: result.StatusOK, age: intp(0)},
		)
		q := scoring.Qualifying(records, p)
		require.Len(t, q, 2)
		for _, r := range q {
			assert.LessOrEqual(t, *r.PersonAge, 16)
		}
	})

	t.Run("Unknown Age Fails Lower Bound", func(t *testing.T) {
		records := build(rec{person: 1, points: floatp(10), status: result.StatusOK})
		q := scoring.Qualifying(records, scoring.Params{AgeMin: intp(0), AgeMax: intp(16), Status: scoring.StatusOKOnly})
		assert.Empty(t, q)
	})

	t.Run("Unknown Age Passes Unbounded Table", func(t *testing.T) {
		records := build(rec{person: 1, points: floatp(10), status: result.StatusOK})
		q := scoring.Qualifying(records, scoring.Params{Status: scoring.StatusOKOnly})
		assert.Len(t, q, 1)
	})
}

// --------------------------------------------------------------------------
// Scoring
// --------------------------------------------------------------------------

func TestScore(t *testing.T) {
	// Seven approved results: 100, 90, 80, 70, 60, 50, 40.
	sevenResults := build(
		ok(1, 100), ok(1, 90), ok(1, 80), ok(1, 70), ok(1, 60), ok(1, 50), ok(1, 40),
	)

	t.Run("Top Five Of Seven", func(t *testing.T) {
		sum, contributing := scoring.Score(sevenResults, scoring.Params{TopN: 5, Status: scoring.StatusOKOnly})
		assert.Equal(t, 400.0, sum)
		assert.Len(t, contributing, 5)
	})

	t.Run("Uncapped Sums Everything", func(t *testing.T) {
		sum, contributing := scoring.Score(sevenResults, scoring.Params{TopN: scoring.TopNAll, Status: scoring.StatusOKOnly})
		assert.Equal(t, 490.0, sum)
		assert.Len(t, contributing, 7)
	})

	t.Run("Fewer Results Than Cap", func(t *testing.T) {
		records := build(ok(1, 100), ok(1, 90))
		sum, contributing := scoring.Score(records, scoring.Params{TopN: 5, Status: scoring.StatusOKOnly})
		assert.Equal(t, 190.0, sum)
		assert.Len(t, contributing, 2)
	})

	t.Run("Monotonic In New Results", func(t *testing.T) {
		p := scoring.Params{TopN: 5, Status: scoring.StatusOKOnly}
		before, _ := scoring.Score(sevenResults, p)
		extended := append(append([]result.Record{}, sevenResults...), build(ok(1, 95))...)
		after, _ := scoring.Score(extended, p)
		assert.GreaterOrEqual(t, after, before)
	})

	t.Run("Nil Points Never Score", func(t *testing.T) {
		records := build(
			ok(1, 100),
			rec{person: 1, status: result.StatusOK, age: intp(30)},
		)
		sum, contributing := scoring.Score(records, scoring.Params{TopN: 5, Status: scoring.StatusOKOnly})
		assert.Equal(t, 100.0, sum)
		assert.Len(t, contributing, 1)
	})

	t.Run("Race Count Ignores Points", func(t *testing.T) {
		records := build(
			ok(1, 100),
			rec{person: 1, status: result.StatusMispunch, age: intp(30)},
			rec{person: 1, status: result.StatusDidNotStart, age: intp(30)},
		)
		count, contributing := scoring.CountRaces(records, scoring.Params{Status: scoring.StatusOKOrMispunch})
		assert.Equal(t, 2.0, count)
		assert.Len(t, contributing, 2)
	})
}

// --------------------------------------------------------------------------
// Leaderboards
// --------------------------------------------------------------------------

func TestLeaderboard(t *testing.T) {
	top5, okFound := scoring.TableByID("top5")
	require.True(t, okFound)

	t.Run("Zero Qualifying Omitted", func(t *testing.T) {
		records := build(
			ok(1, 100),
			rec{person: 2, given: "Bo", family: "Ek", status: result.StatusDidNotStart, age: intp(40)},
		)
		rows := scoring.Leaderboard(records, top5)
		require.Len(t, rows, 1)
		assert.Equal(t, 1, rows[0].PersonID)
	})

	t.Run("Ordered By Value Descending", func(t *testing.T) {
		records := build(ok(1, 50), ok(2, 100), ok(3, 75))
		rows := scoring.Leaderboard(records, top5)
		require.Len(t, rows, 3)
		assert.Equal(t, 100.0, rows[0].Value)
		assert.Equal(t, 75.0, rows[1].Value)
		assert.Equal(t, 50.0, rows[2].Value)
	})

	t.Run("Ties Break On Name Swedish", func(t *testing.T) {
		records := build(
			rec{person: 1, given: "Åsa", family: "Berg", points: floatp(100), status: result.StatusOK, age: intp(30)},
			rec{person: 2, given: "Zara", family: "Berg", points: floatp(100), status: result.StatusOK, age: intp(30)},
		)
		rows := scoring.Leaderboard(records, top5)
		require.Len(t, rows, 2)
		// Å sorts after Z in Swedish.
		assert.Equal(t, "Zara Berg", rows[0].Name)
		assert.Equal(t, "Åsa Berg", rows[1].Name)
	})

	t.Run("Race Count Ties Break On Family Name", func(t *testing.T) {
		mostRaces, okFound := scoring.TableByID("mostRaces")
		require.True(t, okFound)
		records := build(
			rec{person: 1, given: "Anna", family: "Öberg", points: floatp(10), status: result.StatusOK, age: intp(30)},
			rec{person: 2, given: "Anna", family: "Andersson", points: floatp(10), status: result.StatusOK, age: intp(30)},
		)
		rows := scoring.Leaderboard(records, mostRaces)
		require.Len(t, rows, 2)
		assert.Equal(t, 2, rows[0].PersonID)
		assert.Equal(t, 1, rows[1].PersonID)
	})

	t.Run("Row Echoes Table Params", func(t *testing.T) {
		rows := scoring.Leaderboard(build(ok(1, 100)), top5)
		require.Len(t, rows, 1)
		assert.Equal(t, top5.Params, rows[0].Params)
		assert.Equal(t, top5.Kind, rows[0].Kind)
	})
}

// Drilldown must reproduce exactly the record set behind a row's value, for
// every table.
func TestDrilldownFidelity(t *testing.T) {
	records := build(
		ok(1, 100), ok(1, 90), ok(1, 80), ok(1, 70), ok(1, 60), ok(1, 50),
		rec{person: 1, given: "Anna", family: "Svensson", status: result.StatusMispunch, age: intp(30)},
		rec{person: 1, given: "Anna", family: "Svensson", points: floatp(65), status: result.StatusOK, age: intp(15), champ: true},
	)

	for _, tbl := range scoring.Tables {
		t.Run(tbl.ID, func(t *testing.T) {
			rows := scoring.Leaderboard(records, tbl)
			for _, row := range rows {
				contributing := scoring.Drilldown(records, row.Params, row.Kind)
				assert.Equal(t, row.Contributing, contributing)

				var recomputed float64
				if row.Kind == scoring.KindRaceCount {
					recomputed = float64(len(contributing))
				} else {
					for i := range contributing {
						recomputed += *contributing[i].Points
					}
				}
				assert.Equal(t, row.Value, recomputed)
			}
		})
	}
}

func TestTables(t *testing.T) {
	assert.Len(t, scoring.Tables, 10)

	seen := map[string]bool{}
	for _, tbl := range scoring.Tables {
		assert.False(t, seen[tbl.ID], "duplicate table id %s", tbl.ID)
		seen[tbl.ID] = true

		got, found := scoring.TableByID(tbl.ID)
		require.True(t, found)
		assert.Equal(t, tbl, got)
	}

	_, found := scoring.TableByID("nope")
	assert.False(t, found)

	champ, found := scoring.TableByID("championship")
	require.True(t, found)
	assert.True(t, champ.Params.OnlyChampionship)
	assert.Equal(t, scoring.TopNAll, champ.Params.TopN)
}
