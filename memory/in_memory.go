package memory

import (
	"sort"
	"sync"
	"time"
)

// InMemoryStore is a process-local tag→value store.
//
// Concurrency: protected by RWMutex, since effects from one agent's tick and
// external readers (UIs, debuggers) may touch it at once.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewInMemoryStore creates an empty tag→value store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{values: make(map[string]any)}
}

// Get returns the value stored under tag and whether it exists.
func (s *InMemoryStore) Get(tag string) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[tag]
	return v, ok, nil
}

// Set stores value under tag, replacing any previous value.
func (s *InMemoryStore) Set(tag string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[tag] = value
	return nil
}

// Delete removes the tag; deleting an absent tag is a no-op.
func (s *InMemoryStore) Delete(tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, tag)
	return nil
}

// Tags returns all stored tags in ascending order.
func (s *InMemoryStore) Tags() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tags := make([]string, 0, len(s.values))
	for tag := range s.values {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// Clear removes every stored tag.
func (s *InMemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]any)
	return nil
}

// InMemoryHistoric records the most recent time each tag was marked.
type InMemoryHistoric struct {
	mu     sync.RWMutex
	stamps map[string]time.Time
}

// NewInMemoryHistoric creates an empty tag→timestamp store.
func NewInMemoryHistoric() *InMemoryHistoric {
	return &InMemoryHistoric{stamps: make(map[string]time.Time)}
}

// Mark records at as the tag's most recent occurrence.
func (h *InMemoryHistoric) Mark(tag string, at time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stamps[tag] = at
	return nil
}

// Timestamp returns when the tag was last marked and whether it ever was.
func (h *InMemoryHistoric) Timestamp(tag string) (time.Time, bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.stamps[tag]
	return t, ok, nil
}

// Since reports the elapsed time between the tag's last mark and now.
func (h *InMemoryHistoric) Since(tag string, now time.Time) (time.Duration, bool, error) {
	t, ok, err := h.Timestamp(tag)
	if err != nil || !ok {
		return 0, ok, err
	}
	return now.Sub(t), true, nil
}

// Clear removes every recorded mark.
func (h *InMemoryHistoric) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stamps = make(map[string]time.Time)
	return nil
}
