package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zbreeden/FourTwentyAnalytics/internal/clock"
)

type Config struct {
	ListenPort      string        // ex: ":5002"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedsDir     string // directory holding modules.yml, statuses.yml, emoji_palette.yml
	SignalsDir   string // directory for latest.json and archive.latest.json
	LedgerFile   string // CSV ledger path
	SequenceFile string // ticket counter state path
	TimeZone     string // IANA zone for broadcast timestamps

	AllowedOrigins []string // optional, restrict CORS to specific origins (empty = allow all)

	// Redis mirror (optional, empty addr = mirror disabled)
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
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("FTA_LISTEN_PORT", ":5002"),
		ShutdownTimeout: mustDuration("FTA_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("FTA_LOG_LEVEL", "info"),
		PrettyLog: mustBool("FTA_PRETTY_LOG", true),

		// Data layout
		SeedsDir:     getenv("FTA_SEEDS_DIR", "seeds"),
		SignalsDir:   getenv("FTA_SIGNALS_DIR", "signals"),
		LedgerFile:   getenv("FTA_LEDGER_FILE", "data/internal/broadcast.csv"),
		SequenceFile: getenv("FTA_SEQUENCE_FILE", "data/internal/ticket_seq.json"),
		TimeZone:     getenv("FTA_TIMEZONE", clock.DefaultZone),

		AllowedOrigins: splitAndTrim(getenv("FTA_ALLOWED_ORIGINS", "")),

		// Redis mirror settings
		RedisAddr:           getenv("FTA_REDIS_ADDR", ""),
		RedisUser:           getenv("FTA_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("FTA_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("FTA_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// MirrorEnabled reports whether a Redis mirror should be wired.
func (c *Config) MirrorEnabled() bool {
	return c.RedisAddr != ""
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
