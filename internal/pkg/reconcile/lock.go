package reconcile

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker is the cluster-wide mutual exclusion primitive guarding a run.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context)
}

// releaseScript deletes the lock key only while we still hold it. GET and
// DEL must happen in one script so an expired lease can never delete a key
// that another holder has re-acquired in the meantime.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock is a Redis-backed lock with a per-run holder token.
type RedisLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

// NewRedisLock creates a lock on the given key with a fresh holder token.
func NewRedisLock(client *redis.Client, key string, ttl time.Duration) *RedisLock {
	return &RedisLock{
		client: client,
		key:    key,
		ttl:    ttl,
		token:  uuid.New().String(),
	}
}

// Acquire tries to take the lock in a single atomic SETNX with expiry.
// A false return means another instance is already running; that is an
// expected outcome, not an error.
func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
}

// Release gives the lock back if this holder still owns it. A token mismatch
// means our lease expired and someone else took over; the key is left alone.
func (l *RedisLock) Release(ctx context.Context) {
	released, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		log.Errorf("[Reconcile] Lock release failed for %s: %v", l.key, err)
		return
	}
	if released == 0 {
		log.Warnf("[Reconcile] Lock %s no longer held by this run, leaving key untouched", l.key)
	}
}
