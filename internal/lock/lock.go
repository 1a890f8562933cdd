// Package lock keeps a match from being simulated twice at once, across processes.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "match_lock:"

// DefaultTTL bounds how long a crashed holder can block a match.
const DefaultTTL = 10 * time.Minute

// Only the token holder may delete the key.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Redis struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{Client: client, TTL: ttl}
}

// Acquire takes key for a fresh token. ok is false when someone else holds it.
func (r *Redis) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := r.Client.SetNX(ctx, keyPrefix+key, token, r.TTL).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops key if token still owns it. Releasing a lost or expired lock is not an error.
func (r *Redis) Release(ctx context.Context, key, token string) error {
	err := releaseScript.Run(ctx, r.Client, []string{keyPrefix + key}, token).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// Holder returns the current token for key, or "" when free.
func (r *Redis) Holder(ctx context.Context, key string) (string, error) {
	val, err := r.Client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}
