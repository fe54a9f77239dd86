// Package listener provides a Postgres LISTEN/NOTIFY consumer for result
// import events. It holds a dedicated pgx connection (not from the pool)
// listening on the `results_imported` channel.
//
// When an import batch lands, the Postgres trigger fires pg_notify and this
// consumer drops the affected cache entries and refreshes the enriched
// results view, so new results are served without waiting out a TTL.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vandringspris/vandringspris-data/internal/cache"
	"github.com/vandringspris/vandringspris-data/internal/db"
	"github.com/vandringspris/vandringspris-data/internal/maintenance"
)

const (
	channel          = "results_imported"
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// ImportEvent is the JSON payload from pg_notify('results_imported', ...).
type ImportEvent struct {
	BatchID   string `json:"batch_id"`
	ClubID    int    `json:"club_id"`
	EventID   int    `json:"event_id"`
	Year      int    `json:"year"`
	Rows      int    `json:"rows"`
	Warnings  int    `json:"warnings"`
	Timestamp int64  `json:"ts"`
}

// Start opens a dedicated connection and listens on the results_imported
// channel. It reconnects automatically on connection loss. Blocks until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, pool *db.Pool, appCache *cache.Cache, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, pool, appCache, logger)
		if ctx.Err() != nil {
			logger.Info("Import listener stopped (context cancelled)")
			return
		}

		logger.Error("Import listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, pool *db.Pool, appCache *cache.Cache, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+channel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", channel, err)
	}
	logger.Info("Import listener connected", "channel", channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		var event ImportEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			logger.Warn("Failed to parse import event",
				"payload", notification.Payload, "error", err)
			continue
		}

		logger.Info("Import event received",
			"batch", event.BatchID,
			"club", event.ClubID,
			"event", event.EventID,
			"rows", event.Rows,
			"warnings", event.Warnings)

		// Process asynchronously to avoid blocking the listener
		go handleImport(ctx, pool, appCache, event, logger)
	}
}

// handleImport invalidates every cache family the new rows can affect and
// refreshes the enriched results view.
func handleImport(ctx context.Context, pool *db.Pool, appCache *cache.Cache, event ImportEvent, logger *slog.Logger) {
	for _, prefix := range []string{
		"results:",
		"leaderboards:",
		"filters:",
		"dashboard:",
		fmt.Sprintf("club:%d:", event.ClubID),
	} {
		appCache.Invalidate(prefix)
	}

	if err := maintenance.RefreshMaterializedViews(ctx, pool, logger); err != nil {
		logger.Warn("View refresh after import failed",
			"batch", event.BatchID, "error", err)
	}
}
