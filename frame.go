package scrollfx

// FrameRequester grants rendering opportunities. RequestFrame must invoke fn
// exactly once, on a later frame, from the loop goroutine.
type FrameRequester interface {
	RequestFrame(fn func())
}

// FrameScheduler coalesces any number of Notify calls between two frames into
// a single onFrame invocation. At most one request is in flight at a time.
type FrameScheduler struct {
	requester FrameRequester
	onFrame   func()
	pending   bool

	notified  uint64
	requested uint64
}

// NewFrameScheduler creates a scheduler that runs onFrame on frames granted
// by r.
func NewFrameScheduler(r FrameRequester, onFrame func()) *FrameScheduler {
	return &FrameScheduler{requester: r, onFrame: onFrame}
}

// Notify asks for onFrame to run on the next frame. Calls made while a
// request is already pending are dropped.
func (f *FrameScheduler) Notify() {
	f.notified++
	if f.pending {
		return
	}
	f.pending = true
	f.requested++
	f.requester.RequestFrame(f.fire)
}

// Pending reports whether a frame request is in flight.
func (f *FrameScheduler) Pending() bool {
	return f.pending
}

// fire clears the in-flight flag before running onFrame so that a Notify
// from inside onFrame books the following frame.
func (f *FrameScheduler) fire() {
	f.pending = false
	f.onFrame()
}
