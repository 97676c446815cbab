package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith loads configuration using the given viper instance. Values already
// set on v take precedence over environment variables and defaults.
func LoadWith(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shapecalc")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	// Server
	cfg.Server.Host = v.GetString("server_host")
	cfg.Server.Port = v.GetInt("server_port")
	cfg.Server.Env = v.GetString("server_env")
	cfg.Server.ServiceName = v.GetString("service_name")
	cfg.Server.ShutdownTimeout = time.Duration(v.GetInt("shutdown_timeout_seconds")) * time.Second

	// Frontend
	cfg.Frontend.Path = v.GetString("frontend_path")

	// CORS
	cfg.CORS.AllowOrigins = splitList(v.GetString("cors_allow_origins"))

	// Rate limiting
	cfg.RateLimit.Enabled = v.GetBool("rate_limit_enabled")
	cfg.RateLimit.Max = v.GetInt("rate_limit_max")
	cfg.RateLimit.Window = time.Duration(v.GetInt("rate_limit_window_seconds")) * time.Second

	// Redis
	cfg.Redis.Enabled = v.GetBool("redis_enabled")
	cfg.Redis.Host = v.GetString("redis_host")
	cfg.Redis.Port = v.GetInt("redis_port")
	cfg.Redis.Password = v.GetString("redis_password")
	cfg.Redis.DB = v.GetInt("redis_db")

	// Sentry
	cfg.Sentry.Enabled = v.GetBool("sentry_enabled")
	cfg.Sentry.DSN = v.GetString("sentry_dsn")
	cfg.Sentry.Environment = v.GetString("sentry_environment")
	cfg.Sentry.SampleRate = v.GetFloat64("sentry_sample_rate")
	cfg.Sentry.Debug = v.GetBool("sentry_debug")

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 8000)
	v.SetDefault("server_env", "development")
	v.SetDefault("service_name", "Shapes Calculator API")
	v.SetDefault("shutdown_timeout_seconds", 30)

	// Frontend defaults
	v.SetDefault("frontend_path", "../frontend")

	// CORS defaults
	v.SetDefault("cors_allow_origins", "*")

	// Rate limiting defaults
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_max", 100)
	v.SetDefault("rate_limit_window_seconds", 60)

	// Redis defaults
	v.SetDefault("redis_enabled", false)
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Sentry defaults
	v.SetDefault("sentry_enabled", false)
	v.SetDefault("sentry_sample_rate", 1.0)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Max <= 0 {
			return fmt.Errorf("rate limit max must be positive when rate limiting is enabled")
		}
		if cfg.RateLimit.Window <= 0 {
			return fmt.Errorf("rate limit window must be positive when rate limiting is enabled")
		}
	}
	if cfg.Sentry.Enabled && cfg.Sentry.DSN == "" {
		return fmt.Errorf("sentry DSN is required when sentry is enabled")
	}
	return nil
}

// splitList splits a comma separated setting, dropping empty entries
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
