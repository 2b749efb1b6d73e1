package builder

import (
	"context"
	"fmt"

	"github.com/ArowuTest/point-balance-service/internal/config"
	"github.com/ArowuTest/point-balance-service/internal/repositories"
	"github.com/ArowuTest/point-balance-service/internal/repositories/bbolt"
	mongorepo "github.com/ArowuTest/point-balance-service/internal/repositories/mongodb"
	redisrepo "github.com/ArowuTest/point-balance-service/internal/repositories/redis"
	"github.com/ArowuTest/point-balance-service/pkg/mongodb"
	"github.com/ArowuTest/point-balance-service/pkg/redisclient"
	"go.uber.org/zap"
)

// KVStoreBuilder opens a key-value backend from configuration
type KVStoreBuilder func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.KeyValueStore, error)

// Drivers maps store.driver values to their builders
var Drivers = map[string]KVStoreBuilder{
	config.DriverRedis:   buildRedis,
	config.DriverMongoDB: buildMongoDB,
	config.DriverBBolt:   buildBBolt,
}

// MakeStore opens the configured backend and wraps it in a PointRecordStore.
// Closing the returned KeyValueStore releases the backend.
func MakeStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repositories.PointRecordStore, repositories.KeyValueStore, error) {
	build, ok := Drivers[cfg.Store.Driver]
	if !ok {
		return nil, nil, fmt.Errorf("%s is not a valid driver", cfg.Store.Driver)
	}

	kv, err := build(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("point store ready", zap.String("driver", cfg.Store.Driver))
	return repositories.NewPointRecordStore(kv, cfg.Store.KeyPrefix), kv, nil
}

func buildRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.KeyValueStore, error) {
	rc := cfg.Redis
	addr := rc.Addr()

	var embedded interface{ Close() }
	if cfg.App.Profile == config.ProfileLocal {
		server, err := redisclient.StartEmbedded(rc.Port)
		if err != nil {
			return nil, err
		}
		logger.Info("embedded redis started", zap.String("addr", server.Addr()))
		addr, embedded = server.Addr(), server
	}

	client, err := redisclient.NewClient(ctx, redisclient.Options{
		Addr:            addr,
		Password:        rc.Password,
		DB:              rc.DB,
		PoolSize:        rc.PoolSize,
		MinIdleConns:    rc.MinIdleConns,
		MaxIdleConns:    rc.MaxIdleConns,
		ConnMaxIdleTime: rc.ConnMaxIdleTime,
		PoolTimeout:     rc.PoolTimeout,
		DialTimeout:     rc.DialTimeout,
		ReadTimeout:     rc.ReadTimeout,
		WriteTimeout:    rc.WriteTimeout,
	})
	if err != nil {
		if embedded != nil {
			embedded.Close()
		}
		return nil, err
	}

	store := redisrepo.NewKVStore(client)
	if embedded == nil {
		return store, nil
	}
	return &withEmbedded{KeyValueStore: store, server: embedded}, nil
}

func buildMongoDB(ctx context.Context, cfg *config.Config, _ *zap.Logger) (repositories.KeyValueStore, error) {
	mc := cfg.MongoDB

	client, err := mongodb.NewClient(ctx, mongodb.Options{
		URI:            mc.URI,
		MaxPoolSize:    mc.MaxPoolSize,
		MinPoolSize:    mc.MinPoolSize,
		ConnectTimeout: mc.ConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	return mongorepo.NewKVStore(client.Database(mc.Database), mc.Collection), nil
}

func buildBBolt(_ context.Context, cfg *config.Config, _ *zap.Logger) (repositories.KeyValueStore, error) {
	return bbolt.New(bbolt.Config{Path: cfg.BBolt.Path, Timeout: cfg.BBolt.Timeout})
}

// withEmbedded stops the in-process redis server after the client is closed
type withEmbedded struct {
	repositories.KeyValueStore
	server interface{ Close() }
}

func (s *withEmbedded) Close() error {
	err := s.KeyValueStore.Close()
	s.server.Close()
	return err
}
