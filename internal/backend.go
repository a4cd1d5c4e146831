package internal

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/activeweek/internal/config"
	"github.com/2beens/activeweek/internal/db"
	"github.com/2beens/activeweek/internal/storage"
	"github.com/2beens/activeweek/pkg"
)

type BackendSecrets struct {
	RedisPassword    string
	PostgresPassword string
}

// KVBackend is the configured store for the workout collection, together with
// the connections it owns.
type KVBackend struct {
	KV          storage.KV
	RedisClient *redis.Client
	DBPool      *pgxpool.Pool

	closers []func()
}

// OpenKVBackend connects the backend named by cfg.StorageBackend.
func OpenKVBackend(ctx context.Context, cfg *config.Config, secrets BackendSecrets, tracingEnabled bool) (*KVBackend, error) {
	b := &KVBackend{}

	switch cfg.StorageBackend {
	case config.StorageRedis:
		rdb, err := storage.NewRedisClient(ctx, storage.RedisParams{
			Host:           cfg.RedisHost,
			Port:           cfg.RedisPort,
			Password:       secrets.RedisPassword,
			TracingEnabled: tracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("redis backend: %w", err)
		}
		b.RedisClient = rdb
		b.KV = storage.NewRedisKV(rdb)
		b.closers = append(b.closers, func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("failed to close redis client conn: %s", err)
			}
		})
	case config.StoragePostgres:
		pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     secrets.PostgresPassword,
			SSLMode:        cfg.PostgresSSLMode,
			MaxConns:       cfg.PostgresMaxConns,
			TracingEnabled: tracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("postgres backend: %w", err)
		}
		pgKV := storage.NewPostgresKV(pool)
		if err := pgKV.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		b.DBPool = pool
		b.KV = pgKV
		b.closers = append(b.closers, func() {
			log.Debugln("closing db pool ...")
			pool.Close()
		})
	case config.StorageSQLite:
		if err := pkg.EnsureDir(filepath.Dir(cfg.SQLitePath)); err != nil {
			return nil, fmt.Errorf("sqlite dir: %w", err)
		}
		sqliteKV, err := storage.OpenSQLiteKV(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite backend: %w", err)
		}
		b.KV = sqliteKV
		b.closers = append(b.closers, func() {
			if err := sqliteKV.Close(); err != nil {
				log.Errorf("failed to close sqlite db: %s", err)
			}
		})
	case config.StorageMemory:
		log.Warnln("memory storage backend: workouts are lost on restart")
		b.KV = storage.NewMemoryKV(cfg.MemoryStoreSizeMB * 1024 * 1024)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	log.Debugf("workouts storage backend: %s", cfg.StorageBackend)
	return b, nil
}

// Persister binds the backend to the configured collection keys.
func (b *KVBackend) Persister(cfg *config.Config) *storage.Persister {
	fallbackKey := cfg.StorageFallbackKey
	if fallbackKey == "" {
		fallbackKey = storage.FallbackKey
	}
	return storage.NewPersister(b.KV, cfg.StorageKey, fallbackKey)
}

func (b *KVBackend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}
