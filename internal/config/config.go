package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Routing
	BasePath string
	Param    string

	// Regions data
	RegionsFile string

	// Auth
	APIKey string

	// Selector diagnostics
	Debug bool

	// Server-side population of the demo page
	FetchTimeout time.Duration

	// Demo page defaults
	PageTitle string
	PageLang  string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		BasePath: os.Getenv("CASCADE_BASE_PATH"),
		Param:    envOr("CASCADE_PARAM", "id"),

		RegionsFile: os.Getenv("CASCADE_REGIONS_FILE"),

		APIKey: os.Getenv("CASCADE_API_KEY"),

		Debug: envBool("CASCADE_DEBUG", false),

		FetchTimeout: envDuration("CASCADE_FETCH_TIMEOUT", 5*time.Second),

		PageTitle: envOr("CASCADE_PAGE_TITLE", "Regions"),
		PageLang:  envOr("CASCADE_PAGE_LANG", "en"),
	}

	cfg.BasePath = strings.TrimSpace(cfg.BasePath)
	cfg.Param = strings.TrimSpace(cfg.Param)
	if cfg.Param == "" {
		cfg.Param = "id"
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 5 * time.Second
	}

	return cfg
}

// PageGlobals returns the page-wide template values for the demo page.
func (c Config) PageGlobals() map[string]any {
	return map[string]any{
		"title": c.PageTitle,
		"lang":  c.PageLang,
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("CASCADE_BASE_PATH must start with /, got %q", c.BasePath)
	}
	if strings.ContainsAny(c.Param, "&=?# ") {
		return fmt.Errorf("CASCADE_PARAM is not a valid query parameter name: %q", c.Param)
	}
	if c.RegionsFile != "" {
		if _, err := os.Stat(c.RegionsFile); err != nil {
			return fmt.Errorf("CASCADE_REGIONS_FILE: %w", err)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
