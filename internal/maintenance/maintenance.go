// Package maintenance runs periodic background tasks as Go tickers: cache
// warming for the registry clubs and materialized view refresh. All
// scheduled work is driven from Go since the API is already a persistent,
// long-running service.
package maintenance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/vandringspris/vandringspris-data/internal/cache"
	"github.com/vandringspris/vandringspris-data/internal/config"
	"github.com/vandringspris/vandringspris-data/internal/db"
	"github.com/vandringspris/vandringspris-data/internal/filter"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	WarmInterval    time.Duration // Prefill filter and club-meta cache entries
	RefreshInterval time.Duration // Materialized view refresh
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		WarmInterval:    30 * time.Minute,
		RefreshInterval: 1 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, pool *db.Pool, appCache *cache.Cache, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"warm", cfg.WarmInterval,
		"refresh", cfg.RefreshInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Warm: prefill the cache entries every first page load hits
	if cfg.WarmInterval > 0 {
		t := time.NewTicker(cfg.WarmInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { warm(ctx, pool, appCache, logger) })
		// One immediate pass so a fresh deploy starts warm.
		go warm(ctx, pool, appCache, logger)
	}

	// Refresh: rebuild the enriched results materialized view
	if cfg.RefreshInterval > 0 {
		t := time.NewTicker(cfg.RefreshInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() {
			if err := RefreshMaterializedViews(ctx, pool, logger); err != nil {
				logger.Warn("Materialized view refresh failed", "error", err)
			}
		})
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// warm recomputes the defaults, the filter options for the latest year, and
// the year lists for every registry club, storing them under the same keys
// the handlers read. Keys must stay in sync with the handler package.
func warm(ctx context.Context, pool *db.Pool, appCache *cache.Cache, logger *slog.Logger) {
	start := time.Now()

	// The first page load asks for the defaults and then the options for
	// the default year, so that pair is what gets prewarmed.
	warmYear := filter.All
	if d, err := filter.DeriveDefaults(ctx, pool); err != nil {
		logger.Warn("Warm: defaults failed", "error", err)
	} else {
		if data, err := json.Marshal(d); err == nil {
			appCache.Set("filters:defaults", data, cache.TTLFilters)
		}
		if d.LatestYear != nil {
			warmYear = strconv.Itoa(*d.LatestYear)
		}
	}

	if opts, err := filter.Derive(ctx, pool, filter.Selection{Year: warmYear}); err != nil {
		logger.Warn("Warm: filter options failed", "error", err)
	} else if data, err := json.Marshal(opts); err == nil {
		appCache.Set(fmt.Sprintf("filters:options:%s:", warmYear), data, cache.TTLFilters)
	}

	for id := range config.ClubRegistry {
		years, err := db.YearsForClub(ctx, pool, id)
		if err != nil {
			logger.Warn("Warm: years failed", "club", id, "error", err)
			continue
		}
		if years == nil {
			years = []int{}
		}
		data, err := json.Marshal(map[string]interface{}{"club": id, "years": years})
		if err != nil {
			continue
		}
		appCache.Set(fmt.Sprintf("club:%d:years", id), data, cache.TTLClubMeta)
	}

	logger.Info("Warm cycle finished", "duration", time.Since(start).Round(time.Millisecond))
}
