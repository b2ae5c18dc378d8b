package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	defaultAPIURL     = "https://api.anthropic.com/v1/messages"
	defaultModel      = "claude-sonnet-4-20250514"
	defaultMaxRetries = 2
	defaultTimeoutMS  = 30000

	// Discount applied to fallback shopping-list costs for budget plans.
	defaultBudgetDiscount = 0.8
)

// Config holds the configuration for the application.
type Config struct {
	// Generation endpoint.
	APIURL   string
	Model    string
	APIKey   string // optional, sent as x-api-key when set
	Provider string // "claude" (default) or "gemini"

	GeminiAPIKey string

	MaxRetries     int
	RequestTimeout time.Duration

	// Local persistence.
	DataDir       string
	MetricsDBPath string

	BudgetDiscount float64
}

// NewFromEnv creates a new Config object from environment variables.
// Everything has a usable default except GEMINI_API_KEY, which is required
// only when the gemini provider is selected.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		APIURL:         envOr("GENERATOR_API_URL", defaultAPIURL),
		Model:          envOr("GENERATOR_MODEL", defaultModel),
		APIKey:         os.Getenv("GENERATOR_API_KEY"),
		Provider:       envOr("GENERATOR_PROVIDER", "claude"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		MaxRetries:     defaultMaxRetries,
		RequestTimeout: defaultTimeoutMS * time.Millisecond,
		BudgetDiscount: defaultBudgetDiscount,
	}

	if cfg.Provider != "claude" && cfg.Provider != "gemini" {
		return nil, fmt.Errorf("GENERATOR_PROVIDER must be claude or gemini, got %q", cfg.Provider)
	}
	if cfg.Provider == "gemini" && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	if v := os.Getenv("GENERATOR_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid GENERATOR_MAX_RETRIES %q", v)
		}
		cfg.MaxRetries = n
	}
	if v := os.Getenv("GENERATOR_TIMEOUT_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid GENERATOR_TIMEOUT_MS %q", v)
		}
		cfg.RequestTimeout = time.Duration(n) * time.Millisecond
	}
	if v := os.Getenv("FALLBACK_BUDGET_DISCOUNT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f > 1 {
			return nil, fmt.Errorf("invalid FALLBACK_BUDGET_DISCOUNT %q", v)
		}
		cfg.BudgetDiscount = f
	}

	cfg.DataDir = os.Getenv("DATA_DIR")
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".family-recipe-garden")
	}
	cfg.MetricsDBPath = envOr("METRICS_DB_PATH", filepath.Join(cfg.DataDir, "metrics.db"))

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
