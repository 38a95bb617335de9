package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, SessionStoreMemory, cfg.Bot.SessionStore)
	assert.Equal(t, 5*time.Minute, cfg.Cache.CategoryTTL)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, "appointments.booked", cfg.RabbitMQ.Queue)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Europe/Moscow")
	t.Setenv("PORT", "9090")
	t.Setenv("BOT_SESSION_STORE", "Redis")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("BOT_SESSION_TTL", "2h")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, SessionStoreRedis, cfg.Bot.SessionStore)
	assert.Equal(t, 2*time.Hour, cfg.Bot.SessionTTL)
	assert.Len(t, cfg.HTTP.CORSAllowedOrigins, 2)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestParse_RejectsUnknownSessionStore(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("BOT_SESSION_STORE", "mongo")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_RejectsBadTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := Parse()
	assert.Error(t, err)
}
