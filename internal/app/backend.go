package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/linkshelf/internal/blob"
	"github.com/MrSnakeDoc/linkshelf/internal/config"
	"github.com/MrSnakeDoc/linkshelf/internal/logger"
	"github.com/MrSnakeDoc/linkshelf/internal/redis"
	"github.com/MrSnakeDoc/linkshelf/internal/store"
)

// OpenBackend binds the blob storage selected by cfg.Backend.
// The caller owns the returned backend and must Close it.
func OpenBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (blob.Backend, error) {
	log = log.With(logger.String("backend", cfg.Backend))

	switch cfg.Backend {
	case config.BackendFile:
		log.Info("using file storage", logger.String("dir", cfg.DataDir))
		return blob.NewFile(cfg.DataDir)

	case config.BackendBolt:
		if err := ensureParent(cfg.BoltPath); err != nil {
			return nil, err
		}
		log.Info("using bolt storage", logger.String("path", cfg.BoltPath))
		return blob.NewBolt(cfg.BoltPath)

	case config.BackendSQLite:
		if err := ensureParent(cfg.SQLitePath); err != nil {
			return nil, err
		}
		log.Info("using sqlite storage", logger.String("path", cfg.SQLitePath))
		return blob.NewSQLite(cfg.SQLitePath)

	case config.BackendRedis:
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("using redis storage", logger.String("prefix", cfg.RedisKeyPrefix))
		return blob.NewRedis(client, cfg.RedisKeyPrefix), nil

	case config.BackendMemory:
		log.Warn("using in-memory storage, bookmarks are lost on exit")
		return blob.NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func ensureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return nil
}

// OpenStore opens the configured backend and wraps it in a store. Close it
// with st.Backend().Close().
func OpenStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*store.Store, error) {
	backend, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return store.New(backend, log), nil
}
