package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"signal-desk/internal/tier"

	"github.com/charmbracelet/log"
)

const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string
	StoreBackend     string

	HTTPPort    int
	CORSOrigins []string

	SSHHost        string
	SSHPort        int
	SSHHostKeyPath string

	EliteSecret string
	VIPSecret   string

	QuotaPollSecs  int
	AnalysisMillis int
	MarketLocation *time.Location

	LogLevel log.Level
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
	}

	if cfg.TelegramBotToken == "" {
		log.Warn("TELEGRAM_BOT_TOKEN not set, telegram bot disabled")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "localhost:6379"
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND")))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = StoreRedis
	}
	switch cfg.StoreBackend {
	case StoreRedis, StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			log.Warn("STORE_BACKEND=postgres without DATABASE_URL, defaulting to memory")
			cfg.StoreBackend = StoreMemory
		}
	default:
		log.Warn("unsupported STORE_BACKEND, defaulting to redis", "value", cfg.StoreBackend)
		cfg.StoreBackend = StoreRedis
	}

	cfg.HTTPPort = positiveInt("HTTP_PORT", 8080)
	cfg.CORSOrigins = parseOrigins(os.Getenv("CORS_ORIGINS"))

	cfg.SSHHost = strings.TrimSpace(os.Getenv("SSH_HOST"))
	if cfg.SSHHost == "" {
		cfg.SSHHost = "0.0.0.0"
	}
	cfg.SSHPort = positiveInt("SSH_PORT", 2222)
	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/signal_desk_ed25519"
	}

	cfg.EliteSecret = strings.TrimSpace(os.Getenv("ELITE_SECRET"))
	if cfg.EliteSecret == "" {
		cfg.EliteSecret = tier.DefaultSecrets.Elite
	}
	cfg.VIPSecret = strings.TrimSpace(os.Getenv("VIP_SECRET"))
	if cfg.VIPSecret == "" {
		cfg.VIPSecret = tier.DefaultSecrets.VIP
	}
	if cfg.EliteSecret == cfg.VIPSecret {
		log.Warn("ELITE_SECRET equals VIP_SECRET, the VIP secret will never match")
	}

	cfg.QuotaPollSecs = positiveInt("QUOTA_POLL_SECS", 60)
	cfg.AnalysisMillis = positiveInt("ANALYSIS_MILLIS", 3000)

	cfg.MarketLocation = time.Local
	if v := strings.TrimSpace(os.Getenv("MARKET_TZ")); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			log.Warn("invalid MARKET_TZ, using local time", "value", v, "err", err)
		} else {
			cfg.MarketLocation = loc
		}
	}

	cfg.LogLevel = log.InfoLevel
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		lvl, err := log.ParseLevel(v)
		if err != nil {
			log.Warn("invalid LOG_LEVEL, using info", "value", v)
		} else {
			cfg.LogLevel = lvl
		}
	}

	return cfg
}

// Secrets returns the configured upgrade tokens.
func (c *Config) Secrets() tier.Secrets {
	return tier.Secrets{Elite: c.EliteSecret, VIP: c.VIPSecret}
}

func (c *Config) QuotaPollInterval() time.Duration {
	return time.Duration(c.QuotaPollSecs) * time.Second
}

func (c *Config) AnalysisDelay() time.Duration {
	return time.Duration(c.AnalysisMillis) * time.Millisecond
}

func positiveInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn("invalid integer, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func parseOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, ok := seen[origin]; ok {
			continue
		}
		seen[origin] = struct{}{}
		out = append(out, origin)
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
