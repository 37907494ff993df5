package loop

// FrameScheduler holds at most one pending frame callback.
// The host calls RunPending once per display refresh.
type FrameScheduler struct {
	next func()
}

// Ensure FrameScheduler satisfies Scheduler.
var _ Scheduler = (*FrameScheduler)(nil)

// RequestFrame sets the callback for the next frame, replacing any pending one.
func (f *FrameScheduler) RequestFrame(fn func()) {
	f.next = fn
}

// RunPending runs the pending callback, if any. The callback may request
// the following frame. Returns whether a callback ran.
func (f *FrameScheduler) RunPending() bool {
	fn := f.next
	if fn == nil {
		return false
	}
	f.next = nil
	fn()
	return true
}
