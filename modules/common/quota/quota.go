package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Usage is the per-client counter for the current window.
type Usage struct {
	ClientID string `json:"clientId"`
	Used     int    `json:"used"`
	Limit    int    `json:"limit"`
}

// Exceeded reports whether the client has used up its allowance.
func (u Usage) Exceeded() bool {
	return u.Limit > 0 && u.Used > u.Limit
}

// Counter increments a key and (re)arms its expiry, returning the new value.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RedisCounter - INCR + EXPIRE를 MULTI/EXEC로 묶어 실행
type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Limiter counts requests per client per day.
// A nil counter or a non-positive limit disables counting.
type Limiter struct {
	counter Counter
	prefix  string
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewLimiter builds a daily limiter backed by Redis under the given key prefix.
func NewLimiter(rdb *redis.Client, prefix string, limit int) *Limiter {
	var counter Counter
	if rdb != nil {
		counter = NewRedisCounter(rdb)
	}
	return NewLimiterWithCounter(counter, prefix, limit)
}

// NewLimiterWithCounter builds a daily limiter on any Counter.
func NewLimiterWithCounter(counter Counter, prefix string, limit int) *Limiter {
	return &Limiter{
		counter: counter,
		prefix:  prefix,
		limit:   limit,
		window:  24 * time.Hour,
		now:     time.Now,
	}
}

// Enabled reports whether the limiter will ever refuse a request.
func (l *Limiter) Enabled() bool {
	return l != nil && l.counter != nil && l.limit > 0
}

func (l *Limiter) key(clientID string) string {
	return fmt.Sprintf("%s:%s:%s", l.prefix, l.now().UTC().Format("20060102"), clientID)
}

// Take increments the client's counter and returns the resulting usage.
// Counter errors are logged and returned with a zero usage, which is never exceeded.
func (l *Limiter) Take(ctx context.Context, clientID string) (Usage, error) {
	usage := Usage{ClientID: clientID}
	if !l.Enabled() {
		return usage, nil
	}
	usage.Limit = l.limit

	used, err := l.counter.Incr(ctx, l.key(clientID), l.window)
	if err != nil {
		log.Warn().Err(err).Str("client", clientID).Msg("⚠️  [Quota] Counter error, skipping limit")
		return Usage{ClientID: clientID}, err
	}

	usage.Used = int(used)
	log.Debug().
		Str("client", clientID).
		Int("used", usage.Used).
		Int("limit", usage.Limit).
		Msg("📊 [Quota] Usage updated")
	return usage, nil
}
