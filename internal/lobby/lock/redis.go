package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "frontdesk/pkg/domain-errors"
	"frontdesk/pkg/requestcontext"
)

const (
	defaultLockTTL      = 10 * time.Second
	defaultPollInterval = 20 * time.Millisecond
	releaseTimeout      = 2 * time.Second
)

// releaseScript deletes the key only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every instance talking to the same Redis.
// Locks expire after the TTL so a crashed holder cannot wedge a badge pool;
// the TTL must exceed the transaction timeout.
type Redis struct {
	client       *redis.Client
	ttl          time.Duration
	pollInterval time.Duration
	logger       *slog.Logger
}

type RedisOption func(*Redis)

func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithPollInterval(d time.Duration) RedisOption {
	return func(r *Redis) {
		if d > 0 {
			r.pollInterval = d
		}
	}
}

func WithLogger(logger *slog.Logger) RedisOption {
	return func(r *Redis) {
		r.logger = logger
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client:       client,
		ttl:          defaultLockTTL,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate lock token")
	}

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()
	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, acquireTimeout(ctx.Err())
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to acquire badge lock")
		}
		if ok {
			return r.releaser(ctx, key, token), nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, acquireTimeout(ctx.Err())
		}
	}
}

func (r *Redis) releaser(ctx context.Context, key, token string) func() {
	return func() {
		// The caller's context may already be done; release must still run.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		err := releaseScript.Run(releaseCtx, r.client, []string{key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) && r.logger != nil {
			r.logger.WarnContext(ctx, "failed to release badge lock; it will expire",
				"request_id", requestcontext.RequestID(ctx),
				"key", key,
				"error", err,
			)
		}
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
