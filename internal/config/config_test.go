package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "s3cret")
}

func TestFromEnv_Defaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BIND_ADDR", "")
	t.Setenv("PORT", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.BindAddr)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Admin.Enabled())
	assert.NotContains(t, cfg.String(), "s3cret")
}

func TestFromEnv_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BIND_ADDR", "127.0.0.1:8080")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "toor")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.BindAddr)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Admin.Enabled())
}

func TestFromEnv_PortFallback(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BIND_ADDR", "")
	t.Setenv("PORT", "4000")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.BindAddr)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"missing database url", "DATABASE_URL", ""},
		{"unknown driver", "DATABASE_DRIVER", "mysql"},
		{"bad cost", "BCRYPT_COST", "ten"},
		{"bad ttl", "TOKEN_TTL", "tomorrow"},
		{"negative ttl", "TOKEN_TTL", "-1h"},
		{"admin without password", "ADMIN_USERNAME", "root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv("ADMIN_USERNAME", "")
			t.Setenv("ADMIN_PASSWORD", "")
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_SecretRequiredOutsideDebug(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GIN_MODE", "release")

	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("GIN_MODE", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, devTokenSecret, cfg.Auth.TokenSecret)
}
