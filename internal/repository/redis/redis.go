package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/pkg/circuitbreaker"
)

type Config struct {
	URL          string
	Prefix       string
	MaxRetries   int
	RetryBackoff time.Duration
	PoolSize     int
	MinIdleConns int
}

// Store is a KVStore over redis strings. Calls go through a circuit breaker
// so a dead server fails fast instead of stalling every request.
type Store struct {
	client *goredis.Client
	cb     *circuitbreaker.CircuitBreaker
	prefix string
}

func NewStore(ctx context.Context, config Config) (*Store, error) {
	opts, err := goredis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if config.MaxRetries > 0 {
		opts.MaxRetries = config.MaxRetries
	}
	if config.RetryBackoff > 0 {
		opts.MinRetryBackoff = config.RetryBackoff
	}
	if config.PoolSize > 0 {
		opts.PoolSize = config.PoolSize
	}
	opts.MinIdleConns = config.MinIdleConns

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewStoreWithClient(client, config.Prefix), nil
}

func NewStoreWithClient(client *goredis.Client, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-store",
			MaxFailures: 5,
			Timeout:     5 * time.Second,
		}),
	}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		value   []byte
		missing bool
	)
	err := s.cb.Execute(func() error {
		v, err := s.client.Get(ctx, s.key(key)).Bytes()
		if errors.Is(err, goredis.Nil) {
			missing = true
			return nil
		}
		value = v
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if missing {
		return nil, repository.ErrKeyNotFound
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	err := s.cb.Execute(func() error {
		return s.client.Set(ctx, s.key(key), value, 0).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.cb.Execute(func() error {
		return s.client.Del(ctx, s.key(key)).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
