package cache

import (
	"context"
	"strconv"

	redis "github.com/redis/go-redis/v9"
)

const (
	// ViewCountKey is the hash holding pending view count deltas per content id.
	ViewCountKey = "content:view:count"
	// LikeCountKey is the hash holding pending like count deltas per content id.
	LikeCountKey = "content:like:count"
)

// Counter accumulates per-content counter deltas outside the relational
// stores. Increments are cheap; a background job periodically drains the
// accumulated deltas back into the content rows.
type Counter interface {
	// Incr adds delta to the counter of one content id and returns the new
	// pending value.
	Incr(ctx context.Context, key, contentID string, delta int64) (int64, error)
	// Drain atomically returns and clears all pending deltas under key.
	Drain(ctx context.Context, key string) (map[string]int64, error)
}

var _ Counter = (*RedisCounter)(nil)

// RedisCounter backs Counter with one redis hash per counter kind.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Incr(ctx context.Context, key, contentID string, delta int64) (int64, error) {
	return r.client.HIncrBy(ctx, key, contentID, delta).Result()
}

func (r *RedisCounter) Drain(ctx context.Context, key string) (map[string]int64, error) {
	var all *redis.MapStringStringCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		all = p.HGetAll(ctx, key)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	deltas := make(map[string]int64, len(all.Val()))
	for id, raw := range all.Val() {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		deltas[id] = v
	}
	return deltas, nil
}
