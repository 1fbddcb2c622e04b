package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings of the shop API.
type Config struct {
	AppEnv  string
	AppPort string

	DatabaseDriver string // postgres or sqlite
	DatabaseDSN    string
	DatabaseLog    string // silent, error, warn, info

	JWTSecret string
	JWTTTL    time.Duration

	RabbitMQURL string // empty disables event publishing
	RedisAddr   string // empty keeps revoked tokens in memory
	RedisPass   string
	RedisDB     int

	LogLevel  string
	LogFormat string

	AdminEmail    string
	AdminPassword string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "minishop.db")
	v.SetDefault("DATABASE_LOG", "warn")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL", "60m")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
}

// Load reads an optional .env file, then environment variables, on top of the defaults.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:         v.GetString("APP_ENV"),
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		DatabaseLog:    v.GetString("DATABASE_LOG"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPass:      v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
	}
	if !strings.HasPrefix(cfg.AppPort, ":") && !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres or sqlite)", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.IsProduction() && c.JWTSecret == "change-me" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
