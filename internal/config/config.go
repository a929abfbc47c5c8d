package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BlogURL    string `mapstructure:"blog_url"`
	BlogOrigin string `mapstructure:"blog_origin"`

	RetryAttempts       int           `mapstructure:"retry_attempts"`
	RetryStatusesCSV    string        `mapstructure:"retry_statuses"`
	RetryStatuses       []int         `mapstructure:"-"`
	RetryWaitMs         int64         `mapstructure:"retry_wait_ms"`
	RetryMaxWaitMs      int64         `mapstructure:"retry_max_wait_ms"`
	RetryWait           time.Duration `mapstructure:"-"`
	RetryMaxWait        time.Duration `mapstructure:"-"`
	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`
	FetchConcurrency    int           `mapstructure:"fetch_concurrency"`

	ProxiesFile string `mapstructure:"proxies_file"`
	SinksFile   string `mapstructure:"sinks_file"`

	StorageType string `mapstructure:"storage_type"`
	BBoltPath   string `mapstructure:"bbolt_path"`

	CrawlIntervalSeconds int64         `mapstructure:"crawl_interval"`
	CrawlInterval        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "habr-harvester")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("blog_url", "https://habr.com/ru/companies/ru_mts/articles/")
	v.SetDefault("blog_origin", "https://habr.com")
	v.SetDefault("retry_attempts", 10)
	v.SetDefault("retry_statuses", "429,500,502,503,504")
	v.SetDefault("retry_wait_ms", 200)
	v.SetDefault("retry_max_wait_ms", 10000)
	v.SetDefault("fetch_timeout_seconds", 30)
	v.SetDefault("fetch_concurrency", 16)
	v.SetDefault("proxies_file", "")
	v.SetDefault("sinks_file", "")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/records.db")
	v.SetDefault("crawl_interval", 0) // seconds; 0 means run once and exit

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.BlogURL) == "" {
		return nil, fmt.Errorf("blog_url must not be empty")
	}
	cfg.BlogURL = normalizeIndexURL(cfg.BlogURL)
	cfg.BlogOrigin = strings.TrimRight(strings.TrimSpace(cfg.BlogOrigin), "/")
	if cfg.BlogOrigin == "" {
		return nil, fmt.Errorf("blog_origin must not be empty")
	}

	if cfg.RetryAttempts <= 0 {
		return nil, fmt.Errorf("invalid retry_attempts (must be positive)")
	}
	statuses, err := parseStatusesCSV(cfg.RetryStatusesCSV)
	if err != nil {
		return nil, fmt.Errorf("invalid retry_statuses: %w", err)
	}
	cfg.RetryStatuses = statuses

	if cfg.RetryWaitMs <= 0 || cfg.RetryMaxWaitMs < cfg.RetryWaitMs {
		return nil, fmt.Errorf("invalid retry wait bounds (want 0 < retry_wait_ms <= retry_max_wait_ms)")
	}
	cfg.RetryWait = time.Duration(cfg.RetryWaitMs) * time.Millisecond
	cfg.RetryMaxWait = time.Duration(cfg.RetryMaxWaitMs) * time.Millisecond

	if cfg.FetchTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	if cfg.FetchConcurrency <= 0 {
		return nil, fmt.Errorf("invalid fetch_concurrency (must be positive)")
	}

	if cfg.CrawlIntervalSeconds < 0 {
		return nil, fmt.Errorf("invalid crawl_interval (must be zero or positive seconds)")
	}
	cfg.CrawlInterval = time.Duration(cfg.CrawlIntervalSeconds) * time.Second

	return &cfg, nil
}

// normalizeIndexURL guarantees the trailing slash page URLs are derived from.
func normalizeIndexURL(u string) string {
	u = strings.TrimSpace(u)
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

// parseStatusesCSV parses a comma-separated list of HTTP status codes.
func parseStatusesCSV(csv string) ([]int, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil, nil
	}

	parts := strings.Split(csv, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		code, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("status %q is not a number", p)
		}
		if code < 100 || code > 599 {
			return nil, fmt.Errorf("status %d out of range", code)
		}
		out = append(out, code)
	}
	return out, nil
}
