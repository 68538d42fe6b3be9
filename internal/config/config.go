package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinSessionSecretLen is the shortest accepted PLANOPRO_SESSION_SECRET. The
// first 32 bytes sign the session cookie, the next 32 encrypt it.
const MinSessionSecretLen = 64

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	AppName string // shown in page titles and the mobile drawer
	NavFile string // optional YAML menu override, empty = embedded menu

	// Session
	SessionSecret string        // >= 64 chars
	SessionCookie string        // cookie name
	SessionTTL    time.Duration // idle lifetime of a sidebar state
	SecureCookie  bool          // true => cookie only sent over HTTPS
	GCInterval    time.Duration // how often idle in-memory states are swept

	// Redis (optional, empty address => in-memory state store)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to these networks
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	// Sidebar action rate limiting, per client IP
	RateBurst  int
	RatePerMin int
}

// UseRedis reports whether sidebar state should live in Redis.
func (c *Config) UseRedis() bool { return c.RedisAddr != "" }

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() *Config {
	loadDotEnv(".env")

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PLANOPRO_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PLANOPRO_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PLANOPRO_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PLANOPRO_PRETTY_LOG", true),

		// UI
		AppName: getenv("PLANOPRO_APP_NAME", "PlanoPro"),
		NavFile: getenv("PLANOPRO_NAV_FILE", ""),

		// Session
		SessionSecret: requireSecret("PLANOPRO_SESSION_SECRET", MinSessionSecretLen),
		SessionCookie: getenv("PLANOPRO_SESSION_COOKIE", "planopro_session"),
		SessionTTL:    mustDuration("PLANOPRO_SESSION_TTL", 30*time.Minute),
		SecureCookie:  mustBool("PLANOPRO_SECURE_COOKIE", false),
		GCInterval:    mustDuration("PLANOPRO_GC_INTERVAL", 5*time.Minute),

		// Redis settings
		RedisAddr:           getenv("PLANOPRO_REDIS_ADDR", ""),
		RedisUser:           getenv("PLANOPRO_REDIS_USERNAME", ""),
		RedisPassword:       getenv("PLANOPRO_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("PLANOPRO_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("PLANOPRO_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("PLANOPRO_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("PLANOPRO_TRUST_PROXY", false),

		RateBurst:  getenvInt("PLANOPRO_RATE_BURST", 30),
		RatePerMin: getenvInt("PLANOPRO_RATE_PER_MIN", 120),
	}

	if cfg.SessionTTL <= 0 {
		panic("❌ FATAL: PLANOPRO_SESSION_TTL must be positive")
	}
	if cfg.GCInterval <= 0 {
		panic("❌ FATAL: PLANOPRO_GC_INTERVAL must be positive")
	}
	if cfg.RateBurst <= 0 || cfg.RatePerMin <= 0 {
		panic("❌ FATAL: PLANOPRO_RATE_BURST and PLANOPRO_RATE_PER_MIN must be positive")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.SessionSecret = "***REDACTED***"
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

// loadDotEnv applies a .env file if one exists. A missing file is normal.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("❌ FATAL: cannot parse %s: %v", path, err))
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

func requireSecret(key string, minLen int) string {
	v := requireEnv(key)
	if len(v) < minLen {
		panic(fmt.Sprintf("❌ FATAL: %s must be at least %d characters", key, minLen))
	}
	return v
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
