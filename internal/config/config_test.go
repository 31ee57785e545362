package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DATA_DIR", "REDIS_ADDR", "LOG_LEVEL", "LOG_FORMAT", "LOGIN_BURST", "LOCK_LEASE", "B2_KEY_ID", "TOKEN_DB_PATH"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "data/tokens.db", cfg.TokenDBPath)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, LogFormatText, cfg.Log.Format)
	assert.Equal(t, 5, cfg.LoginBurst)
	assert.Equal(t, 10*time.Second, cfg.LockLease)
	assert.False(t, cfg.B2.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATA_DIR", "/srv/club")
	t.Setenv("TOKEN_DB_PATH", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOGIN_RATE", "0.5")
	t.Setenv("LOCK_LEASE", "3s")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("B2_KEY_ID", "id")
	t.Setenv("B2_APP_KEY", "key")
	t.Setenv("B2_BUCKET", "bucket")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "/srv/club/tokens.db", cfg.TokenDBPath)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, 0.5, cfg.LoginRate)
	assert.Equal(t, 3*time.Second, cfg.LockLease)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.B2.Enabled())
}
