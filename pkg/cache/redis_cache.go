package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// pushUniqueScript keeps the hash and the ordering list in step.
var pushUniqueScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 1 then
	redis.call('LPUSH', KEYS[2], ARGV[1])
	return 1
end
return 0
`)

type redisCache struct {
	client *redis.Client
}

// NewRedisCache returns a Cache implemented with Redis
func NewRedisCache(addr, password string) Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &redisCache{client: rdb}
}

func (r *redisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCache) PushUnique(ctx context.Context, hashKey, listKey, field, value string) (bool, error) {
	n, err := pushUniqueScript.Run(ctx, r.client, []string{hashKey, listKey}, field, value).Int()
	if err != nil {
		return false, fmt.Errorf("redis push unique: %w", err)
	}
	return n == 1, nil
}

func (r *redisCache) Ordered(ctx context.Context, hashKey, listKey string) ([]string, error) {
	fields, err := r.client.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}
	if len(fields) == 0 {
		return []string{}, nil
	}

	values, err := r.client.HMGet(ctx, hashKey, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hmget: %w", err)
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// list entry without a hash value
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
