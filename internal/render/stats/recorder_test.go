package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	return client, mr
}

func TestMemoryRecorder(t *testing.T) {
	ctx := context.Background()
	rec := NewMemoryRecorder()
	assert.Equal(t, "memory", rec.Backend())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rec.Record(ctx, OutcomeSuccess, 100*time.Millisecond)
		}()
	}
	wg.Wait()
	require.NoError(t, rec.Record(ctx, OutcomeEngineFailed, 200*time.Millisecond))
	require.NoError(t, rec.Record(ctx, Outcome("bogus"), 0))

	snap, err := rec.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), snap.Counts[OutcomeSuccess])
	assert.Equal(t, int64(1), snap.Counts[OutcomeEngineFailed])
	assert.Equal(t, int64(1), snap.Counts[OutcomeInternal])
	assert.Equal(t, int64(12), snap.Total)
	assert.InDelta(t, 1200.0/12.0, snap.AvgDurationMs, 0.001)
}

func TestMemoryRecorder_EmptySnapshot(t *testing.T) {
	snap, err := NewMemoryRecorder().Snapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, snap.Total)
	assert.Zero(t, snap.AvgDurationMs)
	assert.Len(t, snap.Counts, len(Outcomes))
}

func TestRedisRecorder(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	rec := NewRedisRecorder(client)
	assert.Equal(t, "redis", rec.Backend())
	require.NoError(t, rec.Ping(ctx))

	t.Run("empty store reads as zero", func(t *testing.T) {
		snap, err := rec.Snapshot(ctx)
		require.NoError(t, err)
		assert.Zero(t, snap.Total)
	})

	t.Run("counts outcomes and durations", func(t *testing.T) {
		require.NoError(t, rec.Record(ctx, OutcomeSuccess, 300*time.Millisecond))
		require.NoError(t, rec.Record(ctx, OutcomeSuccess, 100*time.Millisecond))
		require.NoError(t, rec.Record(ctx, OutcomeNotFound, 200*time.Millisecond))

		snap, err := rec.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), snap.Counts[OutcomeSuccess])
		assert.Equal(t, int64(1), snap.Counts[OutcomeNotFound])
		assert.Equal(t, int64(3), snap.Total)
		assert.InDelta(t, 200.0, snap.AvgDurationMs, 0.001)

		v, err := mr.Get("render:stats:success")
		require.NoError(t, err)
		assert.Equal(t, "2", v)
	})

	t.Run("reports redis errors", func(t *testing.T) {
		mr.Close()
		assert.Error(t, rec.Record(ctx, OutcomeSuccess, time.Millisecond))
		_, err := rec.Snapshot(ctx)
		assert.Error(t, err)
	})
}
