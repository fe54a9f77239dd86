package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vandringspris/vandringspris-data/internal/db"
)

// RefreshMaterializedViews refreshes the views backing the enriched result
// reads. Uses CONCURRENTLY so reads are not blocked during refresh.
// Call this after a result import lands.
func RefreshMaterializedViews(ctx context.Context, pool *db.Pool, logger *slog.Logger) error {
	views := []string{
		"mv_results_enriched",
	}

	for _, v := range views {
		start := time.Now()
		_, err := pool.Exec(ctx, fmt.Sprintf("REFRESH MATERIALIZED VIEW CONCURRENTLY %s", v))
		dur := time.Since(start).Round(time.Millisecond)

		if err != nil {
			logger.Warn("Failed to refresh materialized view",
				"view", v, "duration", dur, "error", err)
			return fmt.Errorf("refresh %s: %w", v, err)
		}
		logger.Info("Refreshed materialized view", "view", v, "duration", dur)
	}
	return nil
}
