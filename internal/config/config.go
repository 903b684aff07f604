package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by LINKSHELF_BACKEND.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline, must exceed ProbeTimeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Storage
	Backend    string // one of the Backend* constants
	DataDir    string // file backend directory
	BoltPath   string // bolt backend database file
	SQLitePath string // sqlite backend database file
	SeedFile   string // optional homepage-style bookmarks.yaml used by the seed action

	SnapshotInterval time.Duration // copy the collection aside this often, 0 = off

	// Link checks
	ProbeTimeout    time.Duration // fixed deadline for one HEAD probe (default: 5s)
	ProbeBurst      int           // rate limit burst per client IP on check-status
	ProbeRefillRate int           // tokens per minute per client IP on check-status

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password
	RedisDB               int           // Redis DB number
	RedisKeyPrefix        string        // prefix for the document key (ex: "linkshelf:")
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration // timeout for each ping attempt
	RedisPoolSize         int
	RedisConnectTimeout   time.Duration // total time to retry connecting
	RedisRetryInterval    time.Duration // initial wait between retries, doubles each attempt
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts   []string // optional, restrict access to specific Host headers
	AllowedCIDRS   []string // optional, restrict infra endpoints to these IPs/CIDRs
	AllowedOrigins []string // CORS origins for the JSON API, empty = same-origin only
	TrustProxy     bool     // true => trust X-Forwarded-For headers
}

// Option overrides a loaded value before validation (CLI flags).
type Option func(*Config)

func Load(opts ...Option) *Config {
	cfg := &Config{
		ListenPort:      getenv("LINKSHELF_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKSHELF_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("LINKSHELF_REQUEST_TIMEOUT", 15*time.Second),

		LogLevel:  getenv("LINKSHELF_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKSHELF_PRETTY_LOG", true),

		Backend:    strings.ToLower(getenv("LINKSHELF_BACKEND", BackendFile)),
		DataDir:    getenv("LINKSHELF_DATA_DIR", "./data"),
		BoltPath:   getenv("LINKSHELF_BOLT_PATH", "./data/linkshelf.bolt"),
		SQLitePath: getenv("LINKSHELF_SQLITE_PATH", "./data/linkshelf.db"),
		SeedFile:   getenv("LINKSHELF_SEED_FILE", ""),

		SnapshotInterval: mustDuration("LINKSHELF_SNAPSHOT_INTERVAL", time.Hour),

		ProbeTimeout:    mustDuration("LINKSHELF_PROBE_TIMEOUT", 5*time.Second),
		ProbeBurst:      getenvInt("LINKSHELF_PROBE_BURST", 60),
		ProbeRefillRate: getenvInt("LINKSHELF_PROBE_REFILL_PER_MIN", 120),

		RedisAddr:             getenv("LINKSHELF_REDIS_ADDR", ""),
		RedisUser:             getenv("LINKSHELF_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("LINKSHELF_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("LINKSHELF_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("LINKSHELF_REDIS_DB", 0),
		RedisKeyPrefix:        getenv("LINKSHELF_REDIS_KEY_PREFIX", "linkshelf:"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		AllowedHosts:   splitAndTrim(getenv("LINKSHELF_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   splitAndTrim(getenv("LINKSHELF_ALLOWED_CIDRS", "")),
		AllowedOrigins: splitAndTrim(getenv("LINKSHELF_ALLOWED_ORIGINS", "")),
		TrustProxy:     mustBool("LINKSHELF_TRUST_PROXY", false),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate checks cross-field requirements that depend on the chosen backend.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("LINKSHELF_DATA_DIR is required for the %s backend", c.Backend)
		}
	case BackendBolt:
		if c.BoltPath == "" {
			return fmt.Errorf("LINKSHELF_BOLT_PATH is required for the %s backend", c.Backend)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("LINKSHELF_SQLITE_PATH is required for the %s backend", c.Backend)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("LINKSHELF_REDIS_ADDR is required for the %s backend", c.Backend)
		}
		if c.RedisPasswordRequired && c.RedisPassword == "" {
			return fmt.Errorf("LINKSHELF_REDIS_PASSWORD is required when LINKSHELF_REDIS_PASSWORD_REQUIRED=true")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown LINKSHELF_BACKEND %q", c.Backend)
	}

	if c.SnapshotInterval < 0 {
		return fmt.Errorf("LINKSHELF_SNAPSHOT_INTERVAL must be >= 0, got %v", c.SnapshotInterval)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("LINKSHELF_PROBE_TIMEOUT must be > 0, got %v", c.ProbeTimeout)
	}
	if c.RequestTimeout <= c.ProbeTimeout {
		return fmt.Errorf("LINKSHELF_REQUEST_TIMEOUT (%v) must exceed LINKSHELF_PROBE_TIMEOUT (%v)",
			c.RequestTimeout, c.ProbeTimeout)
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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
