package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisNamespace = "ihub:cache:"
	fieldValue     = "value"
	fieldStale     = "stale"
	scanBatch      = 200
)

// Redis stores each entry as a hash {value, stale} under a namespaced key.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Read(ctx context.Context, key string) (Entry, bool, error) {
	vals, err := r.client.HMGet(ctx, redisNamespace+key, fieldValue, fieldStale).Result()
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache read %s: %w", key, err)
	}
	raw, ok := vals[0].(string)
	if !ok {
		return Entry{}, false, nil
	}
	stale, _ := vals[1].(string)
	return Entry{Value: []byte(raw), Stale: stale == "1"}, true, nil
}

func (r *Redis) Write(ctx context.Context, key string, value []byte) error {
	redisKey := redisNamespace + key
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, redisKey, fieldValue, value, fieldStale, "0")
		p.Expire(ctx, redisKey, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache write %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, prefix string) error {
	keys, err := r.scan(ctx, prefix)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	_, err = r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, key := range keys {
			p.HSet(ctx, redisNamespace+key, fieldStale, "1")
			p.Expire(ctx, redisNamespace+key, r.ttl)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache invalidate %s: %w", prefix, err)
	}
	return nil
}

func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	return r.scan(ctx, prefix)
}

// scan walks the keyspace under prefix and returns un-namespaced keys.
func (r *Redis) scan(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}
	iter := r.client.Scan(ctx, 0, redisNamespace+prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()[len(redisNamespace):]
		if Matches(key, prefix) {
			keys = append(keys, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("cache scan %s: %w", prefix, err)
	}
	return keys, nil
}
