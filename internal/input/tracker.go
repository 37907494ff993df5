package input

import "time"

// Tracker adapts press-only terminal input to key-down/key-up events.
// Terminals repeat a held key but never report its release, so a key is
// released once it has not been seen for the hold duration.
type Tracker struct {
	state    *State
	hold     time.Duration
	holds    map[string]time.Duration // Per-key overrides of hold
	lastSeen map[string]time.Time
}

// NewTracker creates a tracker that writes into state.
func NewTracker(state *State, hold time.Duration) *Tracker {
	return &Tracker{
		state:    state,
		hold:     hold,
		holds:    make(map[string]time.Duration),
		lastSeen: make(map[string]time.Time),
	}
}

// SetHold gives key its own release window. Edge-triggered keys need one
// longer than the terminal's autorepeat delay so a long press fires once.
func (t *Tracker) SetHold(key string, hold time.Duration) {
	t.holds[key] = hold
}

func (t *Tracker) holdFor(key string) time.Duration {
	if d, ok := t.holds[key]; ok {
		return d
	}
	return t.hold
}

// Apply records the keys seen this frame at time now and releases stale ones.
// Returns the keys that went from released to pressed, each at most once,
// for edge-triggered commands.
func (t *Tracker) Apply(keys []string, now time.Time) []string {
	for k, seen := range t.lastSeen {
		if now.Sub(seen) >= t.holdFor(k) {
			t.state.Release(k)
			delete(t.lastSeen, k)
		}
	}

	var pressed []string
	for _, k := range keys {
		if _, held := t.lastSeen[k]; !held {
			pressed = append(pressed, k)
		}
		t.state.Press(k)
		t.lastSeen[k] = now
	}
	return pressed
}

// Reset releases every tracked key.
func (t *Tracker) Reset() {
	t.state.ReleaseAll()
	clear(t.lastSeen)
}
