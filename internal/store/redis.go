package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend 每个集合一个 string key，内容与文件后端相同
type RedisBackend struct {
	RDB    *redis.Client
	Prefix string
}

func NewRedisBackend(rdb *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{RDB: rdb, Prefix: prefix}
}

func (b *RedisBackend) key(name Name) string { return b.Prefix + string(name) }

func (b *RedisBackend) Read(ctx context.Context, name Name) ([]byte, error) {
	data, err := b.RDB.Get(ctx, b.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotExist
	}
	return data, err
}

func (b *RedisBackend) Write(ctx context.Context, name Name, data []byte) error {
	return b.RDB.Set(ctx, b.key(name), data, 0).Err()
}
