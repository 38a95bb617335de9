package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type SessionStoreKind string

const (
	SessionStoreMemory SessionStoreKind = "memory"
	SessionStoreRedis  SessionStoreKind = "redis"
	SessionStoreSQLite SessionStoreKind = "sqlite"
)

type Config struct {
	App struct {
		Name      string `env:"APP_NAME" envDefault:"vet-clinic-booking"`
		Timezone  string `env:"APP_TIMEZONE" envDefault:"Europe/Moscow"`
		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
		LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	}

	HTTP struct {
		Port               string        `env:"PORT" envDefault:"8080"`
		ReadTimeout        time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
		WriteTimeout       time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
		RateLimitPerSecond int           `env:"RATE_LIMIT_PER_SECOND" envDefault:"20"`
		CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
		AdminAPIKey        string        `env:"ADMIN_API_KEY"`
	}

	DB struct {
		DSN string `env:"DB_DSN"`
	}

	Cache struct {
		CategorySize int           `env:"CATEGORY_CACHE_SIZE" envDefault:"128"`
		CategoryTTL  time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
	}

	RabbitMQ struct {
		URL   string `env:"RABBITMQ_URL"`
		Queue string `env:"RABBITMQ_QUEUE" envDefault:"appointments.booked"`
	}

	Bot struct {
		Token             string           `env:"TELEGRAM_BOT_TOKEN"`
		BaseAPIURL        string           `env:"BASE_API_URL" envDefault:"http://localhost:8080"`
		HTTPClientTimeout time.Duration    `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`
		SessionStore      SessionStoreKind `env:"BOT_SESSION_STORE" envDefault:"memory"`
		SessionTTL        time.Duration    `env:"BOT_SESSION_TTL" envDefault:"24h"`
		RedisAddr         string           `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		RedisPassword     string           `env:"REDIS_PASSWORD"`
		SQLitePath        string           `env:"BOT_SQLITE_PATH" envDefault:"bot_sessions.db"`
		MetricsAddr       string           `env:"BOT_METRICS_ADDR"`
	}
}

// Load lee .env (si existe) y luego variables de entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse solo lee variables de entorno (sin .env); usado en tests.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.Bot.SessionStore = SessionStoreKind(strings.ToLower(strings.TrimSpace(string(cfg.Bot.SessionStore))))
	switch cfg.Bot.SessionStore {
	case SessionStoreMemory, SessionStoreRedis, SessionStoreSQLite:
	default:
		return nil, fmt.Errorf("config: unknown BOT_SESSION_STORE %q", cfg.Bot.SessionStore)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location devuelve la zona horaria de la clínica (APP_TIMEZONE).
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(c.App.Timezone))
	if err != nil {
		return nil, fmt.Errorf("config: invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.HTTP.Port, ":")
}
