package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// release and extend only act while the key still holds our token
var unlockScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`)

var extendScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker is a SET NX PX token lock shared by every service instance.
// The TTL is refreshed while the holder is alive, so a crashed holder frees the
// tree after one TTL.
type RedisLocker struct {
	client   redis.UniversalClient
	ttl      time.Duration
	timeout  time.Duration
	spinWait time.Duration
	logger   *slog.Logger
}

func NewRedisLocker(client redis.UniversalClient, ttl, timeout time.Duration, logger *slog.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{
		client:   client,
		ttl:      ttl,
		timeout:  timeout,
		spinWait: 50 * time.Millisecond,
		logger:   logger,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	deadline := time.Now().Add(l.timeout)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("lock %s held for over %s: %w", key, l.timeout, domain.ErrLockTimeout)
		}

		timer := time.NewTimer(l.spinWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(key, token, stop, done)

	return func() {
		close(stop)
		<-done
		if err := unlockScript.Run(context.Background(), l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.logger.Error("failed to release lock", "key", key, "error", err)
		}
	}, nil
}

func (l *RedisLocker) keepAlive(key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			res, err := extendScript.Run(context.Background(), l.client, []string{key}, token, l.ttl.Milliseconds()).Int64()
			if err != nil {
				l.logger.Warn("failed to extend lock", "key", key, "error", err)
				continue
			}
			if res == 0 {
				l.logger.Error("lock lost while held", "key", key)
				return
			}
		}
	}
}

// NewRedisClient connects and pings, failing fast on a bad address.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}
