package logging

import "sync"

// ProgressSampler suppresses repetitive progress logs while preserving signal
// when a task's percentage crosses a bucket boundary. Tasks are tracked
// independently and the sampler is safe for concurrent use.
type ProgressSampler struct {
	bucketSize int

	mu   sync.Mutex
	last map[string]int
}

// NewProgressSampler constructs a sampler that emits when the percent crosses
// bucket boundaries (default 10%).
func NewProgressSampler(bucketSize int) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, last: make(map[string]int)}
}

// ShouldLog reports whether a progress event for taskID should be logged.
// The first event of a task and the 100% event always log.
func (s *ProgressSampler) ShouldLog(taskID string, percent int) bool {
	if s == nil {
		return true
	}
	percent = min(max(percent, 0), 100)
	bucket := percent / s.bucketSize

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, seen := s.last[taskID]
	if seen && bucket <= prev {
		return false
	}
	s.last[taskID] = bucket
	return true
}

// Forget drops the state of a finished task.
func (s *ProgressSampler) Forget(taskID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	delete(s.last, taskID)
	s.mu.Unlock()
}
