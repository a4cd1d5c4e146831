package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToml = `
[development]
port = 8080
log_level = "debug"
storage_backend = "sqlite"
sqlite_path = "/tmp/activeweek-dev.db"
persist_debounce_ms = 150
allowed_origins = ["http://localhost:5173"]
backup_schedule = "@daily"

[production]
environment = "prod-eu"
host = "0.0.0.0"
storage_backend = "redis"
redis_host = "redis.internal"
auth_enabled = true
backup_destination = "drive"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := Load("dev", writeConfig(t, testToml))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, StorageSQLite, cfg.StorageBackend)
	assert.Equal(t, "/tmp/activeweek-dev.db", cfg.SQLitePath)
	assert.Equal(t, 150*time.Millisecond, cfg.PersistDebounce())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "@daily", cfg.BackupSchedule)
	assert.Equal(t, BackupDisk, cfg.BackupDestination)
	assert.Equal(t, "2112", cfg.PrometheusMetricsPort)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := Load("PRODUCTION", writeConfig(t, testToml))
	require.NoError(t, err)

	assert.Equal(t, "prod-eu", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "redis.internal", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, BackupDrive, cfg.BackupDestination)
	assert.Equal(t, 300*time.Millisecond, cfg.PersistDebounce())
	assert.Equal(t, 60, cfg.RateLimitAllowedPerMin)
}

func TestLoad_Errors(t *testing.T) {
	path := writeConfig(t, testToml)

	_, err := Load("staging", path)
	assert.EqualError(t, err, "unknown env: staging")

	_, err = Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load("dev", writeConfig(t, "[development]\nstorage_backend = \"mongo\"\n"))
	assert.ErrorContains(t, err, `unknown storage backend "mongo"`)

	_, err = Load("prod", writeConfig(t, "[development]\nport = 1\n"))
	assert.ErrorContains(t, err, "no config section")

	_, err = Load("dev", writeConfig(t, "[development\n"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	const key = "ACTIVEWEEK_TEST_DOTENV_TOKEN"
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(key+"=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envPath))
	assert.Equal(t, "from-file", os.Getenv(key))

	// variables already present are not overridden
	t.Setenv(key, "from-env")
	require.NoError(t, LoadDotEnv(envPath))
	assert.Equal(t, "from-env", os.Getenv(key))
}
