/*
weights.go - Process-wide weight configuration holder

PURPOSE:
  Holds the single adjustable WeightConfig consumed by scoring calls.
  Admin edits swap the whole configuration atomically; a scoring call in
  flight may observe either the old or new set, but always uses one
  consistent snapshot for the whole computation because Current returns
  a copy.

WHY NOT A GLOBAL:
  The configuration is an owned object injected where needed, so tests
  and hosts can run independent stores. There is no package-level
  mutable state.

SEE ALSO:
  - scoring.go: Consumes snapshots from this store
*/
package perform

import "sync"

// WeightStore owns the current weight configuration. Safe for concurrent
// use; reads vastly outnumber swaps.
type WeightStore struct {
	mu      sync.RWMutex
	current WeightConfig
}

// NewWeightStore creates a store seeded with the given configuration.
// A nil configuration falls back to DefaultWeights.
func NewWeightStore(w WeightConfig) *WeightStore {
	if w == nil {
		w = DefaultWeights()
	}
	return &WeightStore{current: w.Clone()}
}

// Current returns a snapshot of the configuration. The returned map is a
// copy: a concurrent Swap never mutates a computation in progress.
func (s *WeightStore) Current() WeightConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Swap replaces the configuration in one atomic step and returns the
// previous one. Subsequent Current calls observe the new set.
func (s *WeightStore) Swap(w WeightConfig) WeightConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.current = w.Clone()
	return prev
}
