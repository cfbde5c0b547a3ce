package stats

import (
	"context"
	"sync/atomic"
	"time"
)

// MemoryRecorder keeps counters in process memory
type MemoryRecorder struct {
	counts     map[Outcome]*int64
	durationNs int64
}

// NewMemoryRecorder creates an empty in-memory recorder
func NewMemoryRecorder() *MemoryRecorder {
	counts := make(map[Outcome]*int64, len(Outcomes))
	for _, o := range Outcomes {
		counts[o] = new(int64)
	}
	return &MemoryRecorder{counts: counts}
}

func (m *MemoryRecorder) Record(_ context.Context, outcome Outcome, elapsed time.Duration) error {
	atomic.AddInt64(m.counts[normalize(outcome)], 1)
	atomic.AddInt64(&m.durationNs, elapsed.Nanoseconds())
	return nil
}

func (m *MemoryRecorder) Snapshot(_ context.Context) (Snapshot, error) {
	counts := make(map[Outcome]int64, len(Outcomes))
	for _, o := range Outcomes {
		counts[o] = atomic.LoadInt64(m.counts[o])
	}
	return newSnapshot(counts, atomic.LoadInt64(&m.durationNs)), nil
}

func (m *MemoryRecorder) Backend() string { return "memory" }
