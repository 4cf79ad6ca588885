package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "root:root@tcp(localhost:3306)/swipe?parseTime=true&charset=utf8mb4&loc=UTC", cfg.DB.DSN)
	assert.Equal(t, 120, cfg.Discovery.PoolSize)
	assert.Equal(t, time.Hour, cfg.Discovery.FollowerCountTTL)
	assert.Equal(t, "50051", cfg.GRPC.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("LOG_SOURCE", "true")
	t.Setenv("CATALOG_DEFAULT_COOLDOWN", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Empty(t, cfg.DB.DSN)
	assert.True(t, cfg.Log.Source)
	assert.Equal(t, 2*time.Minute, cfg.Catalog.DefaultCooldown)
}

func TestNew_FallsBackOnBadValue(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := New()
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}
