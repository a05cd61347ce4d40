package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds all runtime configuration parameters
type Config struct {
	BaseURL                string `json:"base_url"`
	MaxPages               int    `json:"max_pages"`
	AuditMode              string `json:"audit_mode"`
	PageDelayMs            int    `json:"page_delay_ms"`
	RequestTimeoutMs       int    `json:"request_timeout_ms"`
	DiscoveryTimeoutMs     int    `json:"discovery_timeout_ms"`
	SitemapURLLimit        int    `json:"sitemap_url_limit"`
	HomepageLinkLimit      int    `json:"homepage_link_limit"`
	MinDiscoveredPages     int    `json:"min_discovered_pages"`
	LinkCheckLimit         int    `json:"link_check_limit"`
	CriticalScoreThreshold int    `json:"critical_score_threshold"`
	PageSpeedEndpoint      string `json:"pagespeed_endpoint"`
	PageSpeedAPIKey        string `json:"pagespeed_api_key"`
	DBPath                 string `json:"db_path"`
	MetricsPath            string `json:"metrics_path"`
	LogLevel               string `json:"log_level"`
}

// LoadConfig reads and validates configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for unspecified fields
func applyDefaults(cfg *Config) {
	if cfg.MaxPages == 0 {
		cfg.MaxPages = 10
	}
	if cfg.AuditMode == "" {
		cfg.AuditMode = "gradual"
	}
	if cfg.PageDelayMs == 0 {
		cfg.PageDelayMs = 1000
	}
	if cfg.RequestTimeoutMs == 0 {
		cfg.RequestTimeoutMs = 10000
	}
	if cfg.DiscoveryTimeoutMs == 0 {
		cfg.DiscoveryTimeoutMs = 15000
	}
	if cfg.SitemapURLLimit == 0 {
		cfg.SitemapURLLimit = 50
	}
	if cfg.HomepageLinkLimit == 0 {
		cfg.HomepageLinkLimit = 30
	}
	if cfg.MinDiscoveredPages == 0 {
		cfg.MinDiscoveredPages = 10
	}
	if cfg.LinkCheckLimit == 0 {
		cfg.LinkCheckLimit = 10
	}
	if cfg.CriticalScoreThreshold == 0 {
		cfg.CriticalScoreThreshold = 30
	}
	if cfg.PageSpeedEndpoint == "" {
		cfg.PageSpeedEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "audit.db"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "metrics.json"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// validate checks that required fields are present and values are sensible
func validate(cfg *Config) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if cfg.MaxPages < 1 {
		return fmt.Errorf("max_pages must be >= 1")
	}
	switch cfg.AuditMode {
	case "full", "standard", "light", "gradual":
	default:
		return fmt.Errorf("audit_mode must be one of full, standard, light, gradual")
	}
	if cfg.RequestTimeoutMs < 1000 {
		return fmt.Errorf("request_timeout_ms must be >= 1000")
	}
	if cfg.DiscoveryTimeoutMs < cfg.RequestTimeoutMs {
		return fmt.Errorf("discovery_timeout_ms must be >= request_timeout_ms")
	}
	return nil
}
