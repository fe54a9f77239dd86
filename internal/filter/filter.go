// Package filter derives the option lists for the statistics page filters
// and the page defaults. Options are computed from what is actually present
// in the result data, so the UI never offers a combination with zero rows.
package filter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/vandringspris/vandringspris-data/internal/config"
	"github.com/vandringspris/vandringspris-data/internal/db"
	"github.com/vandringspris/vandringspris-data/internal/locale"
	"github.com/vandringspris/vandringspris-data/internal/result"
)

// All is the sentinel option value meaning "no restriction".
const All = "all"

// Option is one selectable filter entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options is the full filter option response for one selection state.
type Options struct {
	Clubs     []Option `json:"clubs"`
	Runners   []Option `json:"runners"`
	Forms     []Option `json:"forms"`
	Distances []Option `json:"distances"`
}

// Selection is the client's current filter state. Zero values and the "all"
// sentinel both mean unrestricted.
type Selection struct {
	Year string `json:"year"`
	Club string `json:"club"`
}

// intArg converts a selection field into the nullable RPC argument.
func intArg(s string) *int {
	if s == "" || s == All {
		return nil
	}
	if y, err := strconv.Atoi(s); err == nil {
		return &y
	}
	return nil
}

// Derive computes the option lists for the given selection. Every list is
// prefixed with the "all" sentinel, so an empty database still yields a
// usable response.
func Derive(ctx context.Context, pool *db.Pool, sel Selection) (*Options, error) {
	year := intArg(sel.Year)
	club := intArg(sel.Club)

	clubs, err := clubOptions(ctx, pool, year)
	if err != nil {
		return nil, err
	}
	runners, err := runnerOptions(ctx, pool, year, club)
	if err != nil {
		return nil, err
	}
	forms, err := stringOptions(ctx, pool, "get_event_forms_for_filters", year, club, result.FormIndividual)
	if err != nil {
		return nil, err
	}
	distances, err := stringOptions(ctx, pool, "get_event_distances_for_filters", year, club, "")
	if err != nil {
		return nil, err
	}

	return &Options{
		Clubs:     clubs,
		Runners:   runners,
		Forms:     forms,
		Distances: distances,
	}, nil
}

// clubOptions lists the clubs with results in the selected year, labelled
// from the club registry, then the eventorclubs table, then a numeric
// fallback.
func clubOptions(ctx context.Context, pool *db.Pool, year *int) ([]Option, error) {
	rows, err := pool.Query(ctx, "get_clubs_for_year", year)
	if err != nil {
		return nil, fmt.Errorf("get_clubs_for_year: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id *int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan club id: %w", err)
		}
		if id != nil && *id > 0 {
			ids = append(ids, *id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	names := clubNames(ctx, pool, ids)
	opts := make([]Option, 0, len(ids)+1)
	opts = append(opts, Option{Value: All, Label: "Alla klubbar"})
	for _, id := range ids {
		label := names[id]
		if reg, ok := config.ClubRegistry[id]; ok {
			label = reg.Name
		}
		if label == "" {
			label = fmt.Sprintf("Club %d", id)
		}
		opts = append(opts, Option{Value: strconv.Itoa(id), Label: label})
	}
	sortOptions(opts[1:])
	return opts, nil
}

// clubNames resolves display names via the eventorclubs lookup. The lookup
// is best effort; a failure is logged and leaves labels to the fallbacks.
func clubNames(ctx context.Context, pool *db.Pool, ids []int) map[int]string {
	names := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return names
	}
	rows, err := pool.Query(ctx, "club_names_lookup", ids)
	if err != nil {
		slog.Warn("Club name lookup failed, falling back to ids", "error", err)
		return names
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var name *string
		if err := rows.Scan(&id, &name); err != nil {
			slog.Warn("Club name scan failed, falling back to ids", "error", err)
			return names
		}
		if name != nil {
			names[id] = *name
		}
	}
	if err := rows.Err(); err != nil {
		slog.Warn("Club name lookup failed, falling back to ids", "error", err)
	}
	return names
}

// runnerOptions lists the distinct competitors with results under the
// selection. The list is sorted first and then capped, so a truncated
// dropdown still shows the alphabetically first runners.
func runnerOptions(ctx context.Context, pool *db.Pool, year, club *int) ([]Option, error) {
	rows, err := pool.Query(ctx, "get_runners_for_filters", year, club)
	if err != nil {
		return nil, fmt.Errorf("get_runners_for_filters: %w", err)
	}
	defer rows.Close()

	var runners []Option
	for rows.Next() {
		var id int
		var name *string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan runner: %w", err)
		}
		if id <= 0 || name == nil || *name == "" {
			continue
		}
		runners = append(runners, Option{Value: strconv.Itoa(id), Label: *name})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	runners = sortAndCap(runners, config.RunnerOptionCap)

	opts := make([]Option, 0, len(runners)+1)
	opts = append(opts, Option{Value: All, Label: "Alla löpare"})
	return append(opts, runners...), nil
}

// sortAndCap orders options under Swedish collation and truncates past the
// limit. Sorting happens before the cut so the cut is deterministic and not
// a function of database row order.
func sortAndCap(opts []Option, limit int) []Option {
	sortOptions(opts)
	if len(opts) > limit {
		opts = opts[:limit]
	}
	return opts
}

// stringOptions lists distinct string values (event forms, distances) from
// one of the single-column filter RPCs. Null and blank rows become the
// blankAs value when one is given; for forms that is "Individual", matching
// how result rows normalize their form, so results with a null eventform
// stay selectable. Values are deduplicated after normalization.
func stringOptions(ctx context.Context, pool *db.Pool, stmt string, year, club *int, blankAs string) ([]Option, error) {
	rows, err := pool.Query(ctx, stmt, year, club)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stmt, err)
	}
	defer rows.Close()

	opts := []Option{{Value: All, Label: "Alla"}}
	seen := make(map[string]bool)
	for rows.Next() {
		var v *string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", stmt, err)
		}
		val := normalizeStringValue(v, blankAs)
		if val == "" || seen[val] {
			continue
		}
		seen[val] = true
		opts = append(opts, Option{Value: val, Label: val})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortOptions(opts[1:])
	return opts, nil
}

// normalizeStringValue maps a nullable option value to its canonical form:
// trimmed, with null/blank replaced by blankAs. Empty return means skip.
func normalizeStringValue(v *string, blankAs string) string {
	if v == nil {
		return blankAs
	}
	if s := strings.TrimSpace(*v); s != "" {
		return s
	}
	return blankAs
}

// sortOptions orders options by label under Swedish collation, value as the
// tiebreak so equal labels are stable across requests.
func sortOptions(opts []Option) {
	sort.SliceStable(opts, func(i, j int) bool {
		if c := locale.Compare(opts[i].Label, opts[j].Label); c != 0 {
			return c < 0
		}
		return opts[i].Value < opts[j].Value
	})
}
