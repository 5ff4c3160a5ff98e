package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ulule/limiter/v3"
)

// limiterStore счётчики ulule/limiter в Redis, общие для всех экземпляров сервиса
type limiterStore struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// LimiterStore возвращает хранилище лимитов с ключами "crisiscorner.<prefix>:<key>"
func (c *Client) LimiterStore(prefix string) limiter.Store {
	return newLimiterStore(c.client, prefix)
}

func newLimiterStore(client redis.Cmdable, prefix string) *limiterStore {
	return &limiterStore{client: client, prefix: prefix, now: time.Now}
}

func (s *limiterStore) key(k string) string {
	return servicePrefix + s.prefix + ":" + k
}

func (s *limiterStore) Get(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	return s.Increment(ctx, key, 1, rate)
}

func (s *limiterStore) Increment(ctx context.Context, key string, count int64, rate limiter.Rate) (limiter.Context, error) {
	k := s.key(key)

	value, err := s.client.IncrBy(ctx, k, count).Result()
	if err != nil {
		return limiter.Context{}, fmt.Errorf("increment rate limit counter: %w", err)
	}
	// первый инкремент в окне задаёт срок жизни ключа
	if value == count {
		if err := s.client.PExpire(ctx, k, rate.Period).Err(); err != nil {
			return limiter.Context{}, fmt.Errorf("expire rate limit counter: %w", err)
		}
	}

	ttl, err := s.ttl(ctx, k, rate)
	if err != nil {
		return limiter.Context{}, err
	}

	return newContext(rate, value, ttl, s.now()), nil
}

func (s *limiterStore) Peek(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	k := s.key(key)

	value, err := s.client.Get(ctx, k).Int64()
	if errors.Is(err, redis.Nil) {
		return newContext(rate, 0, rate.Period, s.now()), nil
	}
	if err != nil {
		return limiter.Context{}, fmt.Errorf("peek rate limit counter: %w", err)
	}

	ttl, err := s.ttl(ctx, k, rate)
	if err != nil {
		return limiter.Context{}, err
	}

	return newContext(rate, value, ttl, s.now()), nil
}

func (s *limiterStore) Reset(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return limiter.Context{}, fmt.Errorf("reset rate limit counter: %w", err)
	}
	return newContext(rate, 0, rate.Period, s.now()), nil
}

// ttl оставшееся время окна. Ключ без срока жизни получает полный период.
func (s *limiterStore) ttl(ctx context.Context, k string, rate limiter.Rate) (time.Duration, error) {
	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("read rate limit ttl: %w", err)
	}
	if ttl < 0 {
		if err := s.client.PExpire(ctx, k, rate.Period).Err(); err != nil {
			return 0, fmt.Errorf("expire rate limit counter: %w", err)
		}
		return rate.Period, nil
	}
	return ttl, nil
}

func newContext(rate limiter.Rate, count int64, ttl time.Duration, now time.Time) limiter.Context {
	remaining := int64(0)
	if count < rate.Limit {
		remaining = rate.Limit - count
	}
	return limiter.Context{
		Limit:     rate.Limit,
		Remaining: remaining,
		Reset:     now.Add(ttl).Unix(),
		Reached:   count > rate.Limit,
	}
}
