package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/bpmnconv/internal/severity"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
// Converter settings (headers, job types, exclusions) are read by the
// properties package from its own BPMNCONV_* variables.
type serverConfig struct {
	// Source cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheSweepInterval time.Duration

	// Result listing defaults.
	ResultLimit int
	MaxLimit    int

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool

	// Conversion defaults.
	ConfigFile  string
	Strict      bool
	MinSeverity severity.Severity
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from BPMNCONV_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("BPMNCONV_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("BPMNCONV_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("BPMNCONV_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("BPMNCONV_CACHE_URL_TTL", 5*time.Minute),
		CacheSweepInterval: envDuration("BPMNCONV_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ResultLimit:        envInt("BPMNCONV_RESULT_LIMIT", 100),
		MaxLimit:           envInt("BPMNCONV_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("BPMNCONV_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("BPMNCONV_ALLOW_PRIVATE_IPS", false),
		ConfigFile:         os.Getenv("BPMNCONV_CONFIG"),
		Strict:             envBool("BPMNCONV_STRICT", false),
		MinSeverity:        envSeverity("BPMNCONV_MIN_SEVERITY", severity.SeverityInfo),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

func envSeverity(key string, fallback severity.Severity) severity.Severity {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	s, err := severity.Parse(v)
	if err != nil {
		slog.Warn("invalid severity env var, using default", "key", key, "value", v, "default", fallback.String()) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return s
}
