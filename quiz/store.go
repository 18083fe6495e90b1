package quiz

import (
	"sync"
	"time"
)

type storeEntry struct {
	engine  *Engine
	touched time.Time
}

// Store keeps one live Engine per key (one per authenticated user). Engines
// are independent; the store only guards the map itself.
type Store struct {
	mu      sync.RWMutex
	engines map[string]*storeEntry
}

func NewStore() *Store {
	return &Store{engines: map[string]*storeEntry{}}
}

func (s *Store) Put(key string, e *Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engines[key] = &storeEntry{engine: e, touched: time.Now()}
}

// Get returns the engine for key, refreshing its idle timer.
func (s *Store) Get(key string) (*Engine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.engines[key]
	if !ok {
		return nil, false
	}
	entry.touched = time.Now()
	return entry.engine, true
}

func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.engines, key)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.engines)
}

// ReapIdle discards sessions untouched for longer than maxIdle and reports
// how many were removed.
func (s *Store) ReapIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, entry := range s.engines {
		if entry.touched.Before(cutoff) {
			delete(s.engines, key)
			removed++
		}
	}
	return removed
}
