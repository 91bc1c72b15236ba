package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedisStore creates a Store backed by one Redis string key per slot,
// namespaced by keyPrefix.
func NewRedisStore(addr, password string, db int, keyPrefix string, logger *zap.Logger) (Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return newSnapshotStore(&redisBackend{rdb: rdb, prefix: keyPrefix}, logger), nil
}

type redisBackend struct {
	rdb    *redis.Client
	prefix string
}

func (b *redisBackend) key(slot string) string {
	return fmt.Sprintf("%s:%s", b.prefix, slot)
}

func (b *redisBackend) get(ctx context.Context, slot string) ([]byte, error) {
	data, err := b.rdb.Get(ctx, b.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *redisBackend) set(ctx context.Context, slot string, data []byte) error {
	return b.rdb.Set(ctx, b.key(slot), data, 0).Err()
}

func (b *redisBackend) close() error {
	return b.rdb.Close()
}
