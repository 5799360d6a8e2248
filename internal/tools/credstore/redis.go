package credstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sessions outlive single requests but not forgotten browsers.
const sessionTTL = 72 * time.Hour

type redisEngine struct {
	redis     *redis.Client
	sessionId string
}

// NewRedisEngine backs a store with redis, scoping the fixed token keys
// by session id.
func NewRedisEngine(redisClient *redis.Client, sessionId string) Engine {
	return &redisEngine{
		redis:     redisClient,
		sessionId: sessionId,
	}
}

func (e *redisEngine) key(key string) string {
	return fmt.Sprintf("session:%s:%s", e.sessionId, key)
}

func (e *redisEngine) Get(ctx context.Context, key string) (string, error) {
	value, err := e.redis.Get(ctx, e.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return value, nil
}

func (e *redisEngine) Set(ctx context.Context, key string, value string) error {
	_, err := e.redis.SetEx(ctx, e.key(key), value, sessionTTL).Result()
	if err != nil {
		return err
	}

	return nil
}

func (e *redisEngine) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, e.key(key))
	}

	_, err := e.redis.Del(ctx, prefixed...).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	return nil
}
