package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const failPrefix = "login:fail:"

// LoginGuard counts failed logins per username.
type LoginGuard interface {
	Locked(ctx context.Context, username string) (bool, error)
	// Fail records a failed attempt and reports whether the username is now locked.
	Fail(ctx context.Context, username string) (bool, error)
	Reset(ctx context.Context, username string) error
}

// NewRedisClient connects and pings; callers own Close.
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
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

type RedisLoginGuard struct {
	client      redis.Cmdable
	maxAttempts int
	lockout     time.Duration
}

func NewRedisLoginGuard(client redis.Cmdable, maxAttempts int, lockout time.Duration) *RedisLoginGuard {
	return &RedisLoginGuard{client: client, maxAttempts: maxAttempts, lockout: lockout}
}

func failKey(username string) string {
	return failPrefix + strings.ToLower(strings.TrimSpace(username))
}

func (g *RedisLoginGuard) Locked(ctx context.Context, username string) (bool, error) {
	n, err := g.client.Get(ctx, failKey(username)).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n >= g.maxAttempts, nil
}

// Fail bumps the counter and restarts its TTL, so the lockout runs from the last failure.
func (g *RedisLoginGuard) Fail(ctx context.Context, username string) (bool, error) {
	key := failKey(username)

	var incr *redis.IntCmd
	_, err := g.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.Expire(ctx, key, g.lockout)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() >= int64(g.maxAttempts), nil
}

func (g *RedisLoginGuard) Reset(ctx context.Context, username string) error {
	return g.client.Del(ctx, failKey(username)).Err()
}

// NoopLoginGuard never locks anyone out.
type NoopLoginGuard struct{}

func (NoopLoginGuard) Locked(context.Context, string) (bool, error) { return false, nil }
func (NoopLoginGuard) Fail(context.Context, string) (bool, error)   { return false, nil }
func (NoopLoginGuard) Reset(context.Context, string) error          { return nil }
