// Package querycache is a read-through redis cache for rendered query results.
// The cache is best effort: redis failures are logged and the loader result is served.
package querycache

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL    = time.Minute
	DefaultPrefix = "noderewards:"
)

type Config struct {
	Addr   string
	TTL    time.Duration // Default is 1 minute
	Prefix string        // Default is "noderewards:"
}

type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// New connects to redis and verifies the connection.
func New(ctx context.Context, config Config) (*Cache, error) {
	if config.Addr == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "can't connect to redis")
	}
	return NewWithClient(client, config.TTL, config.Prefix), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration, prefix string) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}
}

// errInvalidated reports a load that raced with Invalidate.
var errInvalidated = errors.New("key invalidated during load")

// keys returns the value key of key and its generation key. Invalidate bumps the generation,
// so a load that started before an invalidation never writes its result.
func (c *Cache) keys(key string) (string, string) {
	return c.prefix + key, c.prefix + "gen:" + key
}

// GetOrLoad returns the cached value of key, calling load and caching its result on a miss.
// Errors from load are returned as is and never cached. A value loaded while key was
// invalidated is returned but not cached.
func (c *Cache) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (string, error)) (string, error) {
	ctx = logger.WithContext(ctx, slogx.String("package", "querycache"), slogx.String("key", key))
	valueKey, genKey := c.keys(key)

	var generation string
	values, err := c.client.MGet(ctx, valueKey, genKey).Result()
	if err != nil {
		logger.WarnContext(ctx, "Failed to read query cache", slogx.Error(err))
	} else {
		if value, ok := values[0].(string); ok {
			return value, nil
		}
		generation, _ = values[1].(string)
	}

	value, err := load(ctx)
	if err != nil {
		return "", errors.WithStack(err)
	}
	switch err := c.store(ctx, valueKey, genKey, generation, value); {
	case err == nil:
	case errors.Is(err, errInvalidated), errors.Is(err, redis.TxFailedErr):
		logger.DebugContext(ctx, "Skipped caching invalidated query result")
	default:
		logger.WarnContext(ctx, "Failed to write query cache", slogx.Error(err))
	}
	return value, nil
}

// store writes value only while the generation of the key is still generation.
func (c *Cache) store(ctx context.Context, valueKey, genKey, generation, value string) error {
	return errors.WithStack(c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return errors.WithStack(err)
		}
		if current != generation {
			return errInvalidated
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, valueKey, value, c.ttl)
			return nil
		})
		return errors.WithStack(err)
	}, genKey))
}

// Invalidate drops keys from the cache and discards results of loads still in flight for them.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			valueKey, genKey := c.keys(key)
			pipe.Incr(ctx, genKey)
			pipe.Del(ctx, valueKey)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to invalidate cache keys")
	}
	return nil
}

func (c *Cache) Close() error {
	return errors.WithStack(c.client.Close())
}
