package filter

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/vandringspris/vandringspris-data/internal/db"
)

// Defaults is the initial filter state for the statistics page. Both fields
// serialize as null when the database gives no answer, so clients can truth
// test them.
type Defaults struct {
	LatestYear  *int    `json:"latestYear"`
	DefaultClub *string `json:"defaultClub"`
}

// DeriveDefaults picks the most recent year with results and, when exactly
// one club has results in that year, preselects it. With zero or several
// clubs there is no default and the client keeps the sentinel.
func DeriveDefaults(ctx context.Context, pool *db.Pool) (*Defaults, error) {
	d := &Defaults{}

	var year *int
	err := pool.QueryRow(ctx, "latest_year_with_results").Scan(&year)
	if err != nil {
		// No rows means an empty database, not a failure.
		if errors.Is(err, pgx.ErrNoRows) {
			return d, nil
		}
		return nil, fmt.Errorf("latest_year_with_results: %w", err)
	}
	if year == nil {
		return d, nil
	}
	d.LatestYear = year

	rows, err := pool.Query(ctx, "clubs_with_results_for_year", *year)
	if err != nil {
		return nil, fmt.Errorf("clubs_with_results_for_year: %w", err)
	}
	defer rows.Close()

	var clubs []int
	for rows.Next() {
		var id *int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		if id != nil && *id > 0 {
			clubs = append(clubs, *id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(clubs) == 1 {
		club := strconv.Itoa(clubs[0])
		d.DefaultClub = &club
	}
	return d, nil
}
