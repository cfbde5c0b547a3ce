package stats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statsKeyPrefix = "render:stats:"             // Counter per outcome: render:stats:{outcome}
	durationKey    = "render:stats:duration_ms" // Sum of request durations in milliseconds
)

// RedisRecorder shares counters between server instances through redis
type RedisRecorder struct {
	client *redis.Client
}

// NewRedisRecorder creates a recorder backed by client
func NewRedisRecorder(client *redis.Client) *RedisRecorder {
	return &RedisRecorder{client: client}
}

func (r *RedisRecorder) Record(ctx context.Context, outcome Outcome, elapsed time.Duration) error {
	pipe := r.client.Pipeline()
	pipe.Incr(ctx, r.outcomeKey(normalize(outcome)))
	pipe.IncrBy(ctx, durationKey, elapsed.Milliseconds())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record render stats: %w", err)
	}
	return nil
}

func (r *RedisRecorder) Snapshot(ctx context.Context) (Snapshot, error) {
	keys := make([]string, 0, len(Outcomes)+1)
	for _, o := range Outcomes {
		keys = append(keys, r.outcomeKey(o))
	}
	keys = append(keys, durationKey)

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read render stats: %w", err)
	}

	counts := make(map[Outcome]int64, len(Outcomes))
	for i, o := range Outcomes {
		n, err := parseCount(vals[i])
		if err != nil {
			return Snapshot{}, fmt.Errorf("invalid counter %s: %w", keys[i], err)
		}
		counts[o] = n
	}
	durationMs, err := parseCount(vals[len(Outcomes)])
	if err != nil {
		return Snapshot{}, fmt.Errorf("invalid counter %s: %w", durationKey, err)
	}

	return newSnapshot(counts, durationMs*int64(time.Millisecond)), nil
}

func (r *RedisRecorder) Backend() string { return "redis" }

// Ping checks the redis connection
func (r *RedisRecorder) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRecorder) outcomeKey(o Outcome) string {
	return statsKeyPrefix + string(o)
}

func parseCount(v interface{}) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected type %T", v)
	}
	return strconv.ParseInt(s, 10, 64)
}
