package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int64
}

// MemoryStore keeps counters in process. Suitable for a single instance.
type MemoryStore struct {
	mu      sync.Mutex
	clients map[string]*window
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{clients: make(map[string]*window)}
}

func (s *MemoryStore) Increment(_ context.Context, key string, windowStart time.Time, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.clients[key]
	if !ok || !w.start.Equal(windowStart) {
		if len(s.clients) > 10000 {
			s.evictBefore(windowStart)
		}
		w = &window{start: windowStart}
		s.clients[key] = w
	}

	w.count++
	return w.count, nil
}

// evictBefore drops counters from finished windows. Caller holds mu.
func (s *MemoryStore) evictBefore(windowStart time.Time) {
	for key, w := range s.clients {
		if w.start.Before(windowStart) {
			delete(s.clients, key)
		}
	}
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
