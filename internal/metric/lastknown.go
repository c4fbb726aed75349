package metric

import (
	"strings"
	"sync"
)

// LastKnownGood remembers the most recent successful value per place for the
// lifetime of the process. Writers take the exclusive lock for a single map
// assignment; readers share the read lock.
type LastKnownGood struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewLastKnownGood creates an empty store.
func NewLastKnownGood() *LastKnownGood {
	return &LastKnownGood{values: make(map[string]float64)}
}

// Store records v for place.
func (s *LastKnownGood) Store(place string, v float64) {
	s.mu.Lock()
	s.values[placeKey(place)] = v
	s.mu.Unlock()
}

// Load returns the last stored value for place.
func (s *LastKnownGood) Load(place string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[placeKey(place)]
	return v, ok
}

func placeKey(place string) string {
	return strings.ToLower(strings.Join(strings.Fields(place), " "))
}
