// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vandringspris/vandringspris-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers every statement the API, filter
// deriver, and export layers use. Prepared statements eliminate parse
// overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Enriched results — the backend does the filtering and joins
		"rpc_results_enriched": "SELECT * FROM rpc_results_enriched($1, $2, $3, $4, $5, $6, $7, $8, $9)",

		// Club scoping
		"rpc_years_for_club": "SELECT year FROM rpc_years_for_club($1)",
		"rpc_club_name":      "SELECT clubname FROM rpc_club_name($1)",

		// Club dashboard (Postgres returns complete JSON)
		"rpc_index461_stats":           "SELECT rpc_index461_stats($1, $2)",
		"rpc_index461_top_competitors": "SELECT rpc_index461_top_competitors($1, $2, $3)",
		"rpc_index461_events_by_year":  "SELECT rpc_index461_events_by_year($1)",

		// Filter options
		"get_clubs_for_year":              "SELECT * FROM get_clubs_for_year($1)",
		"get_runners_for_filters":         "SELECT * FROM get_runners_for_filters($1, $2)",
		"get_event_forms_for_filters":     "SELECT eventform FROM get_event_forms_for_filters($1, $2)",
		"get_event_distances_for_filters": "SELECT eventdistance FROM get_event_distances_for_filters($1, $2)",

		// Club name enrichment (secondary lookup; failure is non-fatal)
		"club_names_lookup": "SELECT organisationid, COALESCE(name, clubname) FROM eventorclubs WHERE organisationid = ANY($1)",

		// Defaults
		"latest_year_with_results": `
			SELECT e.eventyear FROM events e
			WHERE e.eventyear IS NOT NULL
			  AND EXISTS (SELECT 1 FROM results r WHERE r.eventid = e.eventid)
			ORDER BY e.eventyear DESC LIMIT 1`,
		"clubs_with_results_for_year": `
			SELECT DISTINCT r.clubparticipation
			FROM results r JOIN events e ON e.eventid = r.eventid
			WHERE e.eventyear = $1 AND r.clubparticipation IS NOT NULL`,

		// Warnings moderation
		"warnings_list": `
			SELECT id, hide, created, organisationid, eventid, eventraceid,
			       message, personid, clubparticipation, batchid
			FROM warnings
			WHERE $1 OR hide IS NULL OR hide = 0
			ORDER BY created DESC`,
		"warning_set_hide": "UPDATE warnings SET hide = $2 WHERE id = $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
