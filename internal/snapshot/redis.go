package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps snapshots in Redis. A zero TTL keeps them forever.
type RedisStorage struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStorage returns a storage on rdb. Keys are namespaced with prefix.
func NewRedisStorage(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{rdb: rdb, ttl: ttl, prefix: prefix}
}

// NewRedisClient connects to addr, which is either a redis:// URL or a plain
// host:port, and pings the server.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis address is empty")
	}

	var rdb *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		rdb = redis.NewClient(opt)
	} else {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

func (r *RedisStorage) key(key string) string {
	return r.prefix + key
}

func (r *RedisStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StorageError{Op: "get", Key: key, Message: "redis get failed", Cause: err}
	}
	return data, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return &StorageError{Op: "set", Key: key, Message: "redis set failed", Cause: err}
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		return &StorageError{Op: "delete", Key: key, Message: "redis del failed", Cause: err}
	}
	return nil
}
