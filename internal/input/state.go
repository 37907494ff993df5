package input

import (
	"strings"
	"sync"
)

// State maps key identifiers to their pressed flag.
// Entries are created on first event; unknown keys read as released.
// Safe for an input goroutine writing while the tick loop reads.
type State struct {
	mu   sync.RWMutex
	keys map[string]bool
}

// NewState creates an empty key state.
func NewState() *State {
	return &State{keys: make(map[string]bool)}
}

// Set records the most recent event for key.
func (s *State) Set(key string, pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[strings.ToLower(key)] = pressed
}

// Press marks key as held down.
func (s *State) Press(key string) {
	s.Set(key, true)
}

// Release marks key as up.
func (s *State) Release(key string) {
	s.Set(key, false)
}

// Pressed reports whether key is currently held down.
func (s *State) Pressed(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[strings.ToLower(key)]
}

// ReleaseAll marks every known key as up.
func (s *State) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.keys {
		s.keys[k] = false
	}
}
