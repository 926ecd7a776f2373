package store

import (
	"context"
	"sync"
)

// MemoryStore keeps runs in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]Run
	byInstance  map[string][]string
}

// NewMemoryStore returns an empty store; call Init before use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Init resets the store to empty.
func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]Run)
	s.byInstance = make(map[string][]string)
	return nil
}

// SaveRun inserts run, or replaces the run with the same ID.
func (s *MemoryStore) SaveRun(_ context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	if _, ok := s.runs[run.ID]; !ok {
		s.byInstance[run.Instance] = append(s.byInstance[run.Instance], run.ID)
	}
	run.Selection = append([]bool(nil), run.Selection...)
	s.runs[run.ID] = run
	return nil
}

// GetRun returns the run with id and whether it exists.
func (s *MemoryStore) GetRun(_ context.Context, id string) (Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return Run{}, false, ErrNotInitialized
	}
	run, ok := s.runs[id]
	return run, ok, nil
}

// ListRuns returns the runs of instance in insertion order.
func (s *MemoryStore) ListRuns(_ context.Context, instance string) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	ids := s.byInstance[instance]
	out := make([]Run, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.runs[id])
	}
	return out, nil
}
