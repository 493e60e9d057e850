package locker

import (
	"barberbook/pkg/logger"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired holder never frees a lock that someone else took over.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisBackend struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient, opts Options, log *logger.Logger) *Locker {
	return newLocker(&redisBackend{client: client}, opts, log)
}

func (r *redisBackend) tryAcquire(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, token, ttl).Result()
}

func (r *redisBackend) release(ctx context.Context, key, token string) error {
	return releaseScript.Run(ctx, r.client, []string{key}, token).Err()
}

func (r *redisBackend) name() string {
	return "redis"
}
