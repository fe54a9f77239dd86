// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/export.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Club registry — the clubs the dashboards are built for
// --------------------------------------------------------------------------

type ClubConfig struct {
	ID   int
	Name string
}

var ClubRegistry = map[int]ClubConfig{
	114: {ID: 114, Name: "FK Göingarna"},
	461: {ID: 461, Name: "FK Åsen"},
}

// --------------------------------------------------------------------------
// Query limits — single source of truth
// --------------------------------------------------------------------------

const (
	// RunnerOptionCap bounds the runner filter-option payload. Callers must
	// not assume completeness beyond the cap.
	RunnerOptionCap = 5000

	// ResultsPageLimit is the default page size for rpc_results_enriched.
	ResultsPageLimit = 500

	// ExportPageLimit is the page size used when walking the full result
	// set for CSV export.
	ExportPageLimit = 10000
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DatabaseSource Source
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool

	// Cache warmer (zero disables)
	WarmInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	backend := ResolveBackend(BackendInputs{
		Env:         os.Getenv("DATABASE_URL"),
		RuntimeFile: envOr("RUNTIME_CONFIG_FILE", "runtime-config.json"),
		StoredFile:  defaultStoredFile(),
	})
	if backend.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set (or provided via runtime/stored config)")
	}

	return &Config{
		DatabaseURL:    backend.URL,
		DatabaseSource: backend.Source,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8080",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
		WarmInterval: time.Duration(envInt("WARM_INTERVAL_MINUTES", 0)) * time.Minute,
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Backend resolution chain
// --------------------------------------------------------------------------

// Source tags where the backend connection settings came from.
type Source string

const (
	SourceEnv     Source = "env"
	SourceRuntime Source = "runtime"
	SourceStored  Source = "stored"
	SourceMissing Source = "missing"
)

// Backend is the resolved backend connection, tagged with its origin.
type Backend struct {
	URL    string
	Source Source
}

// BackendInputs are the three candidate sources, in precedence order:
// process environment, runtime-injected config file, stored local file.
type BackendInputs struct {
	Env         string
	RuntimeFile string
	StoredFile  string
}

// ResolveBackend picks the first complete source. A missing or unreadable
// file simply yields nothing for that source.
func ResolveBackend(in BackendInputs) Backend {
	if strings.TrimSpace(in.Env) != "" {
		return Backend{URL: strings.TrimSpace(in.Env), Source: SourceEnv}
	}
	if url := readURLFile(in.RuntimeFile); url != "" {
		return Backend{URL: url, Source: SourceRuntime}
	}
	if url := readURLFile(in.StoredFile); url != "" {
		return Backend{URL: url, Source: SourceStored}
	}
	return Backend{Source: SourceMissing}
}

// readURLFile reads {"databaseUrl": "..."} from path.
func readURLFile(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var doc struct {
		DatabaseURL string `json:"databaseUrl"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	return strings.TrimSpace(doc.DatabaseURL)
}

func defaultStoredFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vandringspris", "config.json")
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
