package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr           = ":8080"
	defaultAPITimeout         = 10 * time.Second
	defaultSessionLifetime    = 24 * time.Hour
	defaultTokenCheckInterval = 5 * time.Minute
	defaultListFetchLimit     = 1000
	defaultItemsPerPage       = 10
)

type Config struct {
	APIBaseURL         string
	APITimeout         time.Duration
	HTTPAddr           string
	MetricsAddr        string
	AuthCookieSecure   bool
	SessionLifetime    time.Duration
	TokenCheckInterval time.Duration
	ListFetchLimit     int
	ItemsPerPage       int
}

type LoadOptions struct {
	RequireAPIBaseURL bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireAPIBaseURL: true})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		APIBaseURL:         strings.TrimRight(strings.TrimSpace(os.Getenv("API_BASE_URL")), "/"),
		APITimeout:         defaultAPITimeout,
		HTTPAddr:           getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr:        strings.TrimSpace(os.Getenv("METRICS_ADDR")),
		AuthCookieSecure:   getenvBoolDefault("AUTH_COOKIE_SECURE", false),
		SessionLifetime:    defaultSessionLifetime,
		TokenCheckInterval: defaultTokenCheckInterval,
		ListFetchLimit:     getenvIntDefault("LIST_FETCH_LIMIT", defaultListFetchLimit),
		ItemsPerPage:       getenvIntDefault("ITEMS_PER_PAGE", defaultItemsPerPage),
	}

	if v := os.Getenv("API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.APITimeout = d
		}
	}
	if v := os.Getenv("SESSION_LIFETIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionLifetime = d
		}
	}
	if v := os.Getenv("TOKEN_CHECK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TokenCheckInterval = d
		}
	}

	if opts.RequireAPIBaseURL {
		if cfg.APIBaseURL == "" {
			return cfg, errors.New("API_BASE_URL is required")
		}
		if u, err := url.Parse(cfg.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			return cfg, errors.New("API_BASE_URL must be an absolute URL")
		}
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func getenvBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch v {
	case "1":
		return true
	case "0":
		return false
	default:
		return def
	}
}
