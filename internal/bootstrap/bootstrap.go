// Package bootstrap wires the storage backend, document store and intake
// pipeline shared by the api and worker binaries.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/config"
	"github.com/jwalitptl/clinic-admin/internal/email"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/repository/badger"
	"github.com/jwalitptl/clinic-admin/internal/repository/document"
	"github.com/jwalitptl/clinic-admin/internal/repository/file"
	"github.com/jwalitptl/clinic-admin/internal/repository/memory"
	"github.com/jwalitptl/clinic-admin/internal/repository/postgres"
	"github.com/jwalitptl/clinic-admin/internal/repository/redis"
	"github.com/jwalitptl/clinic-admin/internal/seed"
	"github.com/jwalitptl/clinic-admin/internal/service/intake"
	"github.com/jwalitptl/clinic-admin/internal/timezone"
	"github.com/jwalitptl/clinic-admin/pkg/messaging"
	redisbroker "github.com/jwalitptl/clinic-admin/pkg/messaging/redis"
	"github.com/jwalitptl/clinic-admin/pkg/metrics"
)

type Core struct {
	KV      repository.KVStore
	Store   *document.Store
	Pending *document.PendingStore
	Broker  messaging.Broker
	Intake  *intake.Service
	Clock   *timezone.Clock
	Metrics *metrics.Metrics
}

// NewCore opens the configured backend and builds the shared services.
// Close releases the backend and the broker.
func NewCore(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*Core, error) {
	m := metrics.NewMetrics(cfg.Metrics.Namespace, reg)
	clock := timezone.NewClock(cfg.Timezone)

	kv, err := OpenKV(ctx, cfg)
	if err != nil {
		return nil, err
	}

	broker, err := OpenBroker(ctx, cfg)
	if err != nil {
		kv.Close()
		return nil, err
	}

	loader := seed.NewLoader(seed.FromLocations(cfg.Seed.Sources, true), cfg.Seed.Timeout, m)
	store := document.NewStore(kv, loader, m)
	pending := document.NewPendingStore(kv)

	intakeSvc := intake.NewService(store, pending, clock, intake.Options{
		Broker:   broker,
		Channel:  cfg.Intake.Channel,
		Notifier: email.New(cfg.Notify),
		Metrics:  m,
	})

	return &Core{
		KV:      kv,
		Store:   store,
		Pending: pending,
		Broker:  broker,
		Intake:  intakeSvc,
		Clock:   clock,
		Metrics: m,
	}, nil
}

func (c *Core) Close() {
	if err := c.Broker.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close broker")
	}
	if err := c.KV.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close storage")
	}
}

// OpenKV opens the backend named by storage.driver.
func OpenKV(ctx context.Context, cfg *config.Config) (repository.KVStore, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return memory.NewStore(), nil
	case "file":
		return file.NewStore(cfg.Storage.FileDir)
	case "badger":
		return badger.NewStore(badger.Config{Path: cfg.Storage.BadgerPath})
	case "redis":
		return redis.NewStore(ctx, redis.Config{
			URL:          cfg.Redis.URL,
			Prefix:       cfg.Redis.Prefix,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
	case "postgres":
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			return nil, err
		}
		kv, err := postgres.NewKVStore(db, cfg.Database.Table)
		if err != nil {
			db.Close()
			return nil, err
		}
		migrateCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := kv.Migrate(migrateCtx); err != nil {
			kv.Close()
			return nil, err
		}
		return kv, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// OpenBroker returns the redis broker when intake.broker is set, otherwise
// an in-process one that only reaches an embedded worker.
func OpenBroker(ctx context.Context, cfg *config.Config) (messaging.Broker, error) {
	if !cfg.Intake.Broker {
		return messaging.NewLocalBroker(), nil
	}
	broker, err := redisbroker.NewRedisBroker(ctx, redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis broker: %w", err)
	}
	return broker, nil
}
