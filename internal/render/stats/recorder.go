package stats

import (
	"context"
	"time"
)

// Outcome classifies how a render request ended
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeInvalidInput Outcome = "invalid_input"
	OutcomeEngineFailed Outcome = "engine_failed"
	OutcomeTimeout      Outcome = "timeout"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeInternal     Outcome = "internal"
	OutcomeRejected     Outcome = "rejected"
)

// Outcomes lists every outcome in reporting order
var Outcomes = []Outcome{
	OutcomeSuccess,
	OutcomeInvalidInput,
	OutcomeEngineFailed,
	OutcomeTimeout,
	OutcomeNotFound,
	OutcomeInternal,
	OutcomeRejected,
}

// Recorder keeps aggregate render counters. It never sees request content.
type Recorder interface {
	Record(ctx context.Context, outcome Outcome, elapsed time.Duration) error
	Snapshot(ctx context.Context) (Snapshot, error)
	Backend() string
}

// Snapshot is a point-in-time view of the counters
type Snapshot struct {
	Counts        map[Outcome]int64 `json:"counts"`
	Total         int64             `json:"total"`
	AvgDurationMs float64           `json:"avg_duration_ms"`
}

// normalize folds unknown outcomes into OutcomeInternal
func normalize(o Outcome) Outcome {
	for _, known := range Outcomes {
		if o == known {
			return o
		}
	}
	return OutcomeInternal
}

func newSnapshot(counts map[Outcome]int64, durationNs int64) Snapshot {
	s := Snapshot{Counts: counts}
	for _, o := range Outcomes {
		s.Total += counts[o]
	}
	if s.Total > 0 {
		s.AvgDurationMs = float64(durationNs) / float64(s.Total) / 1e6
	}
	return s
}
