package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all engine configuration. It is read once at process start
// and treated as read-only afterwards; concurrent extractions share it.
type Config struct {
	Scraper ScraperConfig
	Browser BrowserConfig
	Log     LogConfig
}

// ScraperConfig controls fetching behavior for both transports.
type ScraperConfig struct {
	// UserAgent is the fixed User-Agent header sent on every request.
	UserAgent string

	// Timeout is the per-request fetch deadline.
	Timeout time.Duration // default: 60s

	// ProxyURL is an optional upstream proxy (http, https or socks5 scheme).
	ProxyURL string

	// VerifySSL toggles TLS certificate verification for plain HTTP fetches.
	VerifySSL bool // default: false

	// MaxRetries is the total attempt budget per fetch.
	MaxRetries int // default: 3

	// RetryBackoff is the base backoff unit; attempt n waits n times this.
	RetryBackoff time.Duration // default: 2s
}

// BrowserConfig controls the headless browser sessions.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: true

	// Bin overrides the Chromium binary path.
	Bin string

	// ReadyWait is how long to wait for <body> after navigation before
	// proceeding with a partially rendered document.
	ReadyWait time.Duration // default: 10s
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// DefaultUserAgent matches a desktop Chrome build; marketplaces serve the
// full product page for it.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Scraper: ScraperConfig{
			UserAgent:    envOr("SCOUT_USER_AGENT", DefaultUserAgent),
			Timeout:      envDurationOr("SCOUT_TIMEOUT", 60*time.Second),
			ProxyURL:     os.Getenv("SCOUT_PROXY"),
			VerifySSL:    envBoolOr("SCOUT_VERIFY_SSL", false),
			MaxRetries:   envIntOr("SCOUT_MAX_RETRIES", 3),
			RetryBackoff: envDurationOr("SCOUT_RETRY_BACKOFF", 2*time.Second),
		},
		Browser: BrowserConfig{
			Headless:  envBoolOr("SCOUT_HEADLESS", true),
			NoSandbox: envBoolOr("SCOUT_NO_SANDBOX", true),
			Bin:       os.Getenv("SCOUT_BROWSER_BIN"),
			ReadyWait: envDurationOr("SCOUT_READY_WAIT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  envOr("SCOUT_LOG_LEVEL", "info"),
			Format: envOr("SCOUT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
