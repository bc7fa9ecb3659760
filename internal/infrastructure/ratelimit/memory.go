// Package ratelimit holds the process-local rate-limit counter used when no
// shared store is configured. Counts are lost on restart and are not shared
// between instances.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// pruneEvery controls how often expired windows are swept.
const pruneEvery = 1024

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is a mutex-guarded fixed-window counter.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	hits    int
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*window), now: time.Now}
}

func (s *MemoryStore) Hit(_ context.Context, key string, win time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.hits++
	if s.hits%pruneEvery == 0 {
		s.prune(now)
	}

	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(win)}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

func (s *MemoryStore) prune(now time.Time) {
	for k, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, k)
		}
	}
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
