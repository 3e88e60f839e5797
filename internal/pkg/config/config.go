package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	APIAddr          string        `env:"API_ADDR" envDefault:":8080"`
	AdminAddr        string        `env:"ADMIN_ADDR" envDefault:":9091"`
	RedisAddr        string        `env:"REDIS_ADDR,required"`
	PostgresURL      string        `env:"POSTGRES_URL"`
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"300s"`
	CacheOpTimeout   time.Duration `env:"CACHE_OP_TIMEOUT" envDefault:"250ms"`
	QueryTimeout     time.Duration `env:"QUERY_TIMEOUT" envDefault:"5s"`
	IdentityCacheTTL time.Duration `env:"IDENTITY_CACHE_TTL" envDefault:"5m"`
	// Zero means "current UTC month at request time".
	ReportYear     int     `env:"REPORT_YEAR" envDefault:"0"`
	ReportMonth    int     `env:"REPORT_MONTH" envDefault:"0"`
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`
	// DemoMode swaps the database-backed reservation repository for fixed
	// demo figures. Never enabled implicitly.
	DemoMode bool `env:"DEMO_MODE" envDefault:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if !cfg.DemoMode && cfg.PostgresURL == "" {
		return nil, errors.New("POSTGRES_URL is required unless DEMO_MODE is set")
	}
	if cfg.ReportMonth < 0 || cfg.ReportMonth > 12 {
		return nil, errors.New("REPORT_MONTH must be between 1 and 12, or 0 for the current month")
	}

	return cfg, nil
}
