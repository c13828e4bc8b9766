package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/tasktracker/internal/config"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/metadata"
)

// CloseFunc releases the resources held by an opened repository.
type CloseFunc func() error

func noopClose() error { return nil }

var (
	newRedisClient = func(cfg *config.Config) redisConn {
		return metadata.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}

	newS3API = func(ctx context.Context, cfg *config.Config) (metadata.S3API, error) {
		return metadata.NewS3Client(ctx, metadata.S3Options{
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	}
)

// redisConn is a redis client that can be health-checked and closed.
type redisConn interface {
	metadata.RedisClient
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// OpenRepository builds the backing store selected by cfg.StoreDriver.
func OpenRepository(ctx context.Context, cfg *config.Config, log logging.Logger) (metadata.Repository, CloseFunc, error) {
	log = log.With("driver", cfg.StoreDriver)

	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn(ctx, "using in-memory backing store, data will not survive a restart")
		return metadata.NewMemoryRepository(), noopClose, nil

	case config.DriverSQLite:
		db, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Debug(ctx, "sqlite store opened", "path", cfg.SQLitePath)
		return metadata.NewSQLiteRepository(db), db.Close, nil

	case config.DriverPostgres:
		db, err := OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		log.Debug(ctx, "postgres store opened")
		return metadata.NewPostgresRepository(db), db.Close, nil

	case config.DriverRedis:
		rdb := newRedisClient(cfg)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Debug(ctx, "redis store opened", "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix)
		return metadata.NewRedisRepository(rdb, cfg.RedisPrefix), rdb.Close, nil

	case config.DriverS3:
		api, err := newS3API(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Debug(ctx, "s3 store opened", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return metadata.NewS3Repository(api, cfg.S3Bucket, cfg.S3Prefix), noopClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
