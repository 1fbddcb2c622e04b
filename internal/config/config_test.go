package config_test

import (
	"testing"
	"time"

	"minishop/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 60*time.Minute, cfg.JWTTTL)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.False(t, cfg.IsProduction())
}

func TestFromViper_PortWithoutColon(t *testing.T) {
	v := newViper()
	v.Set("APP_PORT", "9090")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AppPort)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
		msg  string
	}{
		{"unknown driver", "DATABASE_DRIVER", "mongo", "unsupported DATABASE_DRIVER"},
		{"empty dsn", "DATABASE_DSN", "", "DATABASE_DSN is required"},
		{"empty secret", "JWT_SECRET", "", "JWT_SECRET is required"},
		{"zero ttl", "JWT_TTL", "0s", "JWT_TTL must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.val)
			_, err := config.FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFromViper_ProductionNeedsSecret(t *testing.T) {
	v := newViper()
	v.Set("APP_ENV", "production")

	_, err := config.FromViper(v)
	require.Error(t, err)

	v.Set("JWT_SECRET", "s3cr3t")
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
