package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oafront/generator"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool

	// Generate tool defaults.
	DefaultName     string
	DefaultLanguage generator.Language
	Strict          bool

	// operations tool paging.
	ListLimit int
	MaxLimit  int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OAFRONT_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OAFRONT_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OAFRONT_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OAFRONT_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("OAFRONT_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("OAFRONT_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OAFRONT_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(envInt("OAFRONT_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("OAFRONT_ALLOW_PRIVATE_IPS", false),
		DefaultName:        envName("OAFRONT_NAME"),
		DefaultLanguage:    envLanguage("OAFRONT_LANGUAGE"),
		Strict:             envBool("OAFRONT_STRICT", false),
		ListLimit:          envInt("OAFRONT_LIST_LIMIT", 100),
		MaxLimit:           envInt("OAFRONT_MAX_LIMIT", 1000),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
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
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
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
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func envLanguage(key string) generator.Language {
	v := os.Getenv(key)
	if v == "" {
		return generator.LanguageTS
	}
	lang, err := generator.ParseLanguage(v)
	if err != nil {
		slog.Warn("invalid language env var, using default", "key", key, "value", v, "default", generator.LanguageTS)
		return generator.LanguageTS
	}
	return lang
}

func envName(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return generator.DefaultName
	}
	if err := generator.ValidateName(v); err != nil {
		slog.Warn("invalid module name env var, using default", "key", key, "value", v, "default", generator.DefaultName)
		return generator.DefaultName
	}
	return v
}
