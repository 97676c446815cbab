package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, "Shapes Calculator API", cfg.Server.ServiceName)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "../frontend", cfg.Frontend.Path)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("FRONTEND_PATH", "/srv/frontend")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/srv/frontend", cfg.Frontend.Path)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_Validation(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("rejects invalid port", func(t *testing.T) {
		v := viper.New()
		v.Set("server_port", 70000)

		_, err := LoadWith(v)
		assert.ErrorContains(t, err, "server port")
	})

	t.Run("rejects non-positive rate limit", func(t *testing.T) {
		v := viper.New()
		v.Set("rate_limit_enabled", true)
		v.Set("rate_limit_max", 0)

		_, err := LoadWith(v)
		assert.ErrorContains(t, err, "rate limit max")
	})

	t.Run("requires sentry DSN", func(t *testing.T) {
		v := viper.New()
		v.Set("sentry_enabled", true)

		_, err := LoadWith(v)
		assert.ErrorContains(t, err, "sentry DSN")
	})
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a,,b ,"))
}
