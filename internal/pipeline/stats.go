package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationUs int64
	chapters   int
	strategy   string
}

// StatsSnapshot aggregates recent segmentation runs.
type StatsSnapshot struct {
	Count      int            `json:"count"`
	MinUs      int64          `json:"min_us"`
	MaxUs      int64          `json:"max_us"`
	AvgUs      float64        `json:"avg_us"`
	P50Us      float64        `json:"p50_us"`
	P95Us      float64        `json:"p95_us"`
	P99Us      float64        `json:"p99_us"`
	Chapters   int            `json:"chapters"`
	ByStrategy map[string]int `json:"by_strategy"`
}

// SegmentStats tracks segmentation latency and strategy use within a
// rolling window.
type SegmentStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewSegmentStats(maxAge time.Duration) *SegmentStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &SegmentStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one segmentation run.
func (s *SegmentStats) Record(d time.Duration, strategy string, chapters int) {
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		durationUs: us,
		chapters:   chapters,
		strategy:   strategy,
	})
}

func (s *SegmentStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := StatsSnapshot{ByStrategy: map[string]int{}}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationUs)
		sum += sm.durationUs
		snap.Chapters += sm.chapters
		snap.ByStrategy[sm.strategy]++
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Count = len(values)
	snap.MinUs = values[0]
	snap.MaxUs = values[len(values)-1]
	snap.AvgUs = float64(sum) / float64(len(values))
	snap.P50Us = percentile(values, 50)
	snap.P95Us = percentile(values, 95)
	snap.P99Us = percentile(values, 99)
	return snap
}

func (s *SegmentStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	kept := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			kept = append(kept, sm)
		}
	}
	s.samples = kept
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}
	index := float64(len(sorted)-1) * pct / 100
	lower := int(index)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[lower+1])
	return lo + (hi-lo)*weight
}
