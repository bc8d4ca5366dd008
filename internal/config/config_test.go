package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithoutDatabase(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.State.TTL)
	assert.Equal(t, 4, cfg.Ingestion.Concurrency)
	assert.False(t, cfg.DurableConfigured())
	assert.False(t, cfg.RedisConfigured())
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
database:
  postgres:
    host: db.internal
    db: socialhub
  redis:
    host: cache.internal
state:
  ttl: 5m
ingestion:
  concurrency: 8
  fetch_timeout: 12s
  feeds:
    instagram: https://feeds.example.com/instagram/{account}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.DurableConfigured())
	assert.True(t, cfg.RedisConfigured())
	assert.Equal(t, 5*time.Minute, cfg.State.TTL)
	assert.Equal(t, 8, cfg.Ingestion.Concurrency)
	assert.Equal(t, 12*time.Second, cfg.Ingestion.FetchTimeout)
	assert.Equal(t, "https://feeds.example.com/instagram/{account}", cfg.Ingestion.Feeds["instagram"])
}

func TestLoad_EnvOverridesPostgresHost(t *testing.T) {
	path := writeConfig(t, "log:\n  format: json\n")
	t.Setenv("DATABASE_POSTGRES_HOST", "pg.from.env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pg.from.env", cfg.Database.Postgres.Host)
	assert.True(t, cfg.DurableConfigured())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{Host: "localhost", Port: 5432, DB: "hub", User: "app", Password: "secret"}
	assert.Equal(t, "host=localhost port=5432 user=app password=secret dbname=hub sslmode=disable", cfg.DSN())
}
