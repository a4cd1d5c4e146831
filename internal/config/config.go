package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"

	BackupDisk  = "disk"
	BackupDrive = "drive"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// workouts storage
	StorageBackend     string `toml:"storage_backend"`
	StorageKey         string `toml:"storage_key"`
	StorageFallbackKey string `toml:"storage_fallback_key"`
	PersistDebounceMs  int    `toml:"persist_debounce_ms"`
	SQLitePath         string `toml:"sqlite_path"`
	MemoryStoreSizeMB  int    `toml:"memory_store_size_mb"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresSSLMode  string `toml:"postgres_ssl_mode"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`
	// api
	AuthEnabled            bool     `toml:"auth_enabled"`
	AllowedOrigins         []string `toml:"allowed_origins"`
	RateLimitEnabled       bool     `toml:"rate_limit_enabled"`
	RateLimitAllowedPerMin int      `toml:"rate_limit_allowed_per_min"`
	MCPEnabled             bool     `toml:"mcp_enabled"`
	// backups, an empty schedule disables them
	BackupSchedule       string `toml:"backup_schedule"`
	BackupDestination    string `toml:"backup_destination"`
	BackupDir            string `toml:"backup_dir"`
	BackupKeep           int    `toml:"backup_keep"`
	BackupDriveFolder    string `toml:"backup_drive_folder"`
	BackupDriveShareWith string `toml:"backup_drive_share_with"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env, with
// defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}
	return cfg, nil
}

// LoadDotEnv loads secrets from .env style files into the environment. Missing
// files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.StorageBackend == "" {
		c.StorageBackend = StorageMemory
	}
	if c.PersistDebounceMs <= 0 {
		c.PersistDebounceMs = 300
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PostgresHost == "" {
		c.PostgresHost = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "activeweek"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "./activeweek.db"
	}
	if c.RateLimitAllowedPerMin <= 0 {
		c.RateLimitAllowedPerMin = 60
	}
	if c.BackupDestination == "" {
		c.BackupDestination = BackupDisk
	}
	if c.BackupDir == "" {
		c.BackupDir = "./backups"
	}
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageRedis, StoragePostgres, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	switch c.BackupDestination {
	case BackupDisk, BackupDrive:
	default:
		return fmt.Errorf("unknown backup destination %q", c.BackupDestination)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}

func (c *Config) PersistDebounce() time.Duration {
	return time.Duration(c.PersistDebounceMs) * time.Millisecond
}
