// Package warnings handles the import warning moderation surface: listing
// warnings raised during result ingestion and hiding reviewed ones.
package warnings

import (
	"context"
	"fmt"
	"time"

	"github.com/vandringspris/vandringspris-data/internal/db"
)

// Warning is one row from the warnings table.
type Warning struct {
	ID                int       `json:"id"`
	Hide              *int      `json:"hide"`
	Created           time.Time `json:"created"`
	OrganisationID    *int      `json:"organisationid"`
	EventID           *int      `json:"eventid"`
	EventRaceID       *int      `json:"eventraceid"`
	Message           *string   `json:"message"`
	PersonID          *int      `json:"personid"`
	ClubParticipation *int      `json:"clubparticipation"`
	BatchID           *string   `json:"batchid"`
}

// Hidden reports whether the warning has been moderated away.
func (w *Warning) Hidden() bool {
	return w.Hide != nil && *w.Hide != 0
}

// List returns warnings newest first. With includeHidden false only
// unmoderated rows are returned.
func List(ctx context.Context, pool *db.Pool, includeHidden bool) ([]Warning, error) {
	rows, err := pool.Query(ctx, "warnings_list", includeHidden)
	if err != nil {
		return nil, fmt.Errorf("warnings_list: %w", err)
	}
	defer rows.Close()

	var out []Warning
	for rows.Next() {
		var w Warning
		if err := rows.Scan(
			&w.ID, &w.Hide, &w.Created, &w.OrganisationID, &w.EventID,
			&w.EventRaceID, &w.Message, &w.PersonID, &w.ClubParticipation,
			&w.BatchID,
		); err != nil {
			return nil, fmt.Errorf("scan warning: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// SetHide flips the hide flag on one warning.
func SetHide(ctx context.Context, pool *db.Pool, id int, hide bool) error {
	flag := 0
	if hide {
		flag = 1
	}
	tag, err := pool.Exec(ctx, "warning_set_hide", id, flag)
	if err != nil {
		return fmt.Errorf("warning_set_hide %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("warning %d not found", id)
	}
	return nil
}

// BatchResult tracks per-row outcomes of a bulk hide update. One bad id does
// not abort the rest of the batch.
type BatchResult struct {
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// AddError records a failed row.
func (r *BatchResult) AddError(id int, err error) {
	r.Failed++
	r.Errors = append(r.Errors, fmt.Sprintf("id %d: %v", id, err))
}

// Summary returns a compact log line for the batch.
func (r *BatchResult) Summary() string {
	return fmt.Sprintf("updated=%d failed=%d", r.Updated, r.Failed)
}

// BatchSetHide applies the hide flag to every id, row by row, collecting
// per-row failures instead of stopping on the first one.
func BatchSetHide(ctx context.Context, pool *db.Pool, ids []int, hide bool) *BatchResult {
	res := &BatchResult{}
	for _, id := range ids {
		if err := SetHide(ctx, pool, id, hide); err != nil {
			res.AddError(id, err)
			continue
		}
		res.Updated++
	}
	return res
}
