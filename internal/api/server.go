package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/vandringspris/vandringspris-data/internal/api/handler"
	"github.com/vandringspris/vandringspris-data/internal/cache"
	"github.com/vandringspris/vandringspris-data/internal/config"
	"github.com/vandringspris/vandringspris-data/internal/db"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *db.Pool, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag", "Content-Disposition"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, appCache, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Results
		r.Get("/results", h.GetResults)

		// Club scoping
		r.Route("/clubs/{clubID}", func(r chi.Router) {
			r.Get("/years", h.GetClubYears)
			r.Get("/name", h.GetClubName)
		})

		// Award tables
		r.Get("/leaderboards", h.GetLeaderboards)
		r.Get("/leaderboards/drilldown", h.GetLeaderboardDrilldown)

		// Club dashboard (Postgres returns complete JSON)
		r.Route("/dashboard/{clubID}", func(r chi.Router) {
			r.Get("/stats", h.GetDashboardStats)
			r.Get("/top-competitors", h.GetDashboardTopCompetitors)
			r.Get("/events-by-year", h.GetDashboardEventsByYear)
		})

		// CSV export
		r.Get("/export.csv", h.ExportCSV)

		// Warnings moderation
		r.Get("/warnings", h.GetWarnings)
		r.Post("/warnings/hide", h.HideWarnings)
	})

	// Statistics page compatibility routes — same handlers, the URL shape
	// the page has always called.
	r.Route("/api/results-stats", func(r chi.Router) {
		r.Get("/defaults", h.GetDefaults)
		r.Get("/filters", h.GetFilterOptions)
		r.Post("/filters", h.GetFilterOptions)
	})

	return r
}
