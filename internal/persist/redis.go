package persist

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	redisBlobKey    = "meridian:snapshot"
	redisVersionKey = "meridian:snapshot:version"
)

// RedisStore keeps the latest snapshot under a single key. Older versions
// are overwritten; a stale version arriving late is ignored.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save persists the snapshot unless a newer version is already stored.
func (s *RedisStore) Save(ctx context.Context, version int64, blob []byte) error {
	current, err := s.client.Get(ctx, redisVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("persist/redis: read version: %w", err)
	}
	if err == nil && current >= version {
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisBlobKey, blob, 0)
	pipe.Set(ctx, redisVersionKey, strconv.FormatInt(version, 10), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("persist/redis: save: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or ErrNoSnapshot.
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	blob, err := s.client.Get(ctx, redisBlobKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("persist/redis: load: %w", err)
	}
	return blob, nil
}
