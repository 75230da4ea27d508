package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout (ex: 5s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Card store
	StoreBackend string // "sqlite" | "redis" | "memory"
	SQLitePath   string // path to the sqlite file (sqlite backend)
	StoreKey     string // storage key holding the whole card collection

	// Gestures
	ReaddOnDeselect bool          // re-add a card to the store when it is deselected
	AffordanceDwell time.Duration // how long a capture affordance stays usable (default: 5s)
	ResyncInterval  time.Duration // interval to rebuild the views from the store (default: 30s)
	SeedFile        string        // optional yaml/json card file imported on startup

	// Redis (redis backend only)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Access restrictions
	AllowedHosts   []string // optional, restrict ops endpoints to specific Host headers
	AllowedCIDRS   []string // optional, restrict ops endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	AllowedOrigins []string // CORS origins, "*" allows any page to talk to the API
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Rate limiting (per client IP)
	RateLimitPerMin int // sustained requests per minute
	RateLimitBurst  int // burst size
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("NOTARY_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("NOTARY_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("NOTARY_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("NOTARY_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NOTARY_PRETTY_LOG", true),

		// Card store
		StoreBackend: strings.ToLower(getenv("NOTARY_STORE_BACKEND", BackendSQLite)),
		SQLitePath:   getenv("NOTARY_SQLITE_PATH", "/data/notary.db"),
		StoreKey:     getenv("NOTARY_STORE_KEY", "savedCards"),

		// Gestures
		ReaddOnDeselect: mustBool("NOTARY_READD_ON_DESELECT", true),
		AffordanceDwell: mustDuration("NOTARY_AFFORDANCE_DWELL", 5*time.Second),
		ResyncInterval:  mustDuration("NOTARY_RESYNC_INTERVAL", 30*time.Second),
		SeedFile:        getenv("NOTARY_SEED_FILE", ""),

		// Access restrictions
		AllowedHosts:   splitAndTrim(getenv("NOTARY_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   parseAllowedIPs(getenv("NOTARY_ALLOWED_CIDRS", "")),
		AllowedOrigins: splitAndTrim(getenv("NOTARY_ALLOWED_ORIGINS", "*")),
		TrustProxy:     mustBool("NOTARY_TRUST_PROXY", false),

		RateLimitPerMin: getenvInt("NOTARY_RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:  getenvInt("NOTARY_RATE_LIMIT_BURST", 30),
	}

	switch cfg.StoreBackend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		loadRedis(cfg)
	default:
		panic(fmt.Sprintf("❌ FATAL: NOTARY_STORE_BACKEND must be one of sqlite, redis, memory (got %q)", cfg.StoreBackend))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// loadRedis reads the Redis settings, which are only required for the redis backend.
func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("NOTARY_REDIS_ADDR")
	cfg.RedisUser = getenv("NOTARY_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("NOTARY_REDIS_PASSWORD_REQUIRED", true)
	cfg.RedisPassword = getenv("NOTARY_REDIS_PASSWORD", "")
	cfg.RedisDB = requireEnvInt("NOTARY_REDIS_DB")
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: NOTARY_REDIS_PASSWORD is required when NOTARY_REDIS_PASSWORD_REQUIRED=true")
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
