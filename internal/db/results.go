package db

import (
	"context"
	"fmt"

	"github.com/vandringspris/vandringspris-data/internal/result"
)

// ResultsQuery is the parameter set of rpc_results_enriched. Nil pointers
// mean "no restriction"; the backend function applies the filters and joins
// events/persons into the enriched row shape.
type ResultsQuery struct {
	Club             *int
	Year             *int
	Gender           *string // "F" | "M"
	AgeMin           *int
	AgeMax           *int
	OnlyChampionship *bool
	PersonID         *int
	Limit            int
	Offset           int
}

// ResultsEnriched fetches one page of enriched result rows.
func ResultsEnriched(ctx context.Context, pool *Pool, q ResultsQuery) ([]result.Record, error) {
	rows, err := pool.Query(ctx, "rpc_results_enriched",
		q.Club, q.Year, q.Gender, q.AgeMin, q.AgeMax, q.OnlyChampionship,
		q.PersonID, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("rpc_results_enriched: %w", err)
	}
	defer rows.Close()

	var records []result.Record
	for rows.Next() {
		var r result.Record
		if err := rows.Scan(
			&r.EventRaceID, &r.EventID, &r.EventDate, &r.EventName,
			&r.EventForm, &r.EventDistance, &r.EventClassificationID, &r.DisciplineID,
			&r.PersonID, &r.XMLPersonName, &r.PersonNameGiven, &r.PersonNameFamily,
			&r.PersonAge, &r.PersonSex,
			&r.EventClassName, &r.ClassTypeID, &r.ClassFactor, &r.Points,
			&r.ResultTime, &r.ResultTimeDiff, &r.ResultPosition, &r.ClassResultNumberOfStart,
			&r.ResultCompetitorStatus,
			&r.RelayTeamName, &r.RelayLeg, &r.RelayLegOverallPosition,
			&r.RelayTeamEndPosition, &r.RelayTeamEndDiff, &r.RelayTeamEndStatus,
			&r.ClubParticipation,
		); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ResultsEnrichedAll walks every page of rpc_results_enriched until the
// backend returns a short page. Used by the CSV export, which must not
// truncate.
func ResultsEnrichedAll(ctx context.Context, pool *Pool, q ResultsQuery, pageSize int) ([]result.Record, error) {
	q.Limit = pageSize
	q.Offset = 0
	var all []result.Record
	for {
		page, err := ResultsEnriched(ctx, pool, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
		q.Offset += pageSize
	}
}

// YearsForClub returns the years the club has results for, newest first.
func YearsForClub(ctx context.Context, pool *Pool, club int) ([]int, error) {
	rows, err := pool.Query(ctx, "rpc_years_for_club", club)
	if err != nil {
		return nil, fmt.Errorf("rpc_years_for_club: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// ClubName returns the display name for a club id, "" when unknown.
func ClubName(ctx context.Context, pool *Pool, club int) (string, error) {
	var name *string
	err := pool.QueryRow(ctx, "rpc_club_name", club).Scan(&name)
	if err != nil {
		return "", fmt.Errorf("rpc_club_name: %w", err)
	}
	if name == nil {
		return "", nil
	}
	return *name, nil
}
