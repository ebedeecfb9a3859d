package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares client state across processes, e.g. several gallery
// kiosks presenting the same anonymous identity. Keys are namespaced with a
// fixed prefix so the database can be shared with other tools.
type RedisStore struct {
	rdb     *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore connects to addr (password and db may be zero values).
func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		prefix:  "showcase:",
		timeout: 3 * time.Second,
	}
}

func (r *RedisStore) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	v, err := r.rdb.Get(ctx, r.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (r *RedisStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.rdb.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisStore) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.rdb.Del(ctx, r.prefix+key).Err()
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error { return r.rdb.Close() }
