package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef" // 32 bytes

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PASETO_KEY", testKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "dev", cfg.Server.Env)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "tasknest", cfg.Database.DBName)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, []byte(testKey), cfg.Auth.PasetoKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PASETO_KEY", testKey)
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DB_NAME", "tasks_prod")
	t.Setenv("TOKEN_DURATION", "3600")
	t.Setenv("TRUSTED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, "tasks_prod", cfg.Database.DBName)
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.TrustedOrigins)
}

func TestLoadRejectsBadKey(t *testing.T) {
	t.Setenv("PASETO_KEY", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}

func TestConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "secret",
		DBName:   "tasknest",
		SSLMode:  "disable",
	}

	dsn := cfg.ConnectionString()
	assert.True(t, strings.Contains(dsn, "host=db"))
	assert.True(t, strings.Contains(dsn, "dbname=tasknest"))
	assert.True(t, strings.Contains(dsn, "sslmode=disable"))
}
