package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout (ex: 5s)

	LogLevel      string // "debug" | "info" | "warn" | "error"
	PrettyLog     bool   // true => zap dev (color), false => zap prod (JSON)
	LogFile       string // optional rotating JSON log file
	LogMaxSizeMB  int    // rotate after this size
	LogMaxBackups int    // rotated files kept

	StoreBackend string // "memory" | "redis" | "sqlite"
	SQLitePath   string // database file for the sqlite backend
	SeedFile     string // optional YAML seed imported into an empty store

	// Redis
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

	// Write routes
	RateLimitBurst        int // requests a client may burst
	RateLimitRefillPerMin int // tokens regained per minute
	CORSOrigins           []string

	MetricsEnabled bool // expose /metrics

	AllowedHosts []string // optional, restrict write routes to specific Host headers
	AllowedCIDRS []string // optional, restrict readyz/metrics to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("RECS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("RECS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("RECS_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:      getenv("RECS_LOG_LEVEL", "info"),
		PrettyLog:     mustBool("RECS_PRETTY_LOG", true),
		LogFile:       getenv("RECS_LOG_FILE", ""),
		LogMaxSizeMB:  getenvInt("RECS_LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getenvInt("RECS_LOG_MAX_BACKUPS", 3),

		// Storage
		StoreBackend: strings.ToLower(getenv("RECS_STORE", BackendMemory)),
		SQLitePath:   getenv("RECS_SQLITE_PATH", "recommendations.db"),
		SeedFile:     getenv("RECS_SEED_FILE", ""),

		// Write routes
		RateLimitBurst:        getenvInt("RECS_RATE_LIMIT_BURST", 20),
		RateLimitRefillPerMin: getenvInt("RECS_RATE_LIMIT_REFILL_PER_MIN", 60),
		CORSOrigins:           splitAndTrim(getenv("RECS_CORS_ORIGINS", "")),

		MetricsEnabled: mustBool("RECS_METRICS_ENABLED", true),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("RECS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("RECS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("RECS_TRUST_PROXY", false),
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		loadRedis(cfg)
	default:
		panic(fmt.Sprintf("❌ FATAL: RECS_STORE must be one of memory, redis, sqlite (got %q)", cfg.StoreBackend))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// loadRedis fills the Redis settings, required only for the redis backend.
func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("RECS_REDIS_ADDR")
	cfg.RedisUser = getenv("RECS_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("RECS_REDIS_PASSWORD_REQUIRED", true)
	cfg.RedisPassword = getenv("RECS_REDIS_PASSWORD", "")
	cfg.RedisDB = requireEnvInt("RECS_REDIS_DB")
	cfg.RedisDT = mustDuration("RECS_REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("RECS_REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("RECS_REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("RECS_REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("RECS_REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("RECS_REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("RECS_REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("RECS_REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("RECS_REDIS_WARN_THRESHOLD", 3)

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: RECS_REDIS_PASSWORD is required when RECS_REDIS_PASSWORD_REQUIRED=true")
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
	v := requireEnv(key)
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
		if b, err := strconv.ParseBool(v); err == nil {
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
