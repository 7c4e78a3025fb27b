package scrollfx

import (
	"fmt"
	"time"
)

// EngineStats counts what an engine has done since construction.
type EngineStats struct {
	Notifications uint64 // OnScroll calls that reached the scheduler
	Requests      uint64 // frames actually requested from the host
	Frames        uint64 // frame callbacks delivered
	Runs          uint64 // recomputations that ran the pipeline
	Skips         uint64 // recomputations skipped by the visibility gate
	Measures      uint64 // rest geometry measurements
}

// Stats returns a copy of the engine's counters.
func (e *Engine) Stats() EngineStats {
	s := e.stats
	if e.frames != nil {
		s.Notifications = e.frames.notified
		s.Requests = e.frames.requested
	}
	return s
}

// debugStats holds per-frame document metrics. Only populated when
// Document.debug is true.
type debugStats struct {
	frameTime   time.Duration
	callbacks   int
	surfaces    int
	scrollMoved bool
}

// debugLog reports per-frame stats through the package logger.
func (d *Document) debugLog(stats debugStats) {
	if !d.debug {
		return
	}
	Logger().Debug("frame",
		"frame", d.frame,
		"callbacks", stats.callbacks,
		"surfaces", stats.surfaces,
		"scrolled", stats.scrollMoved,
		"elapsed", stats.frameTime)
}

// globalDebug mirrors the most recently set Document debug flag so that
// surface operations (which lack a Document pointer) can check it cheaply.
var globalDebug bool

// debugCheckDisposed panics with a descriptive message when a disposed
// surface is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(s *Surface, op string) {
	if s.disposed {
		panic(fmt.Sprintf("scrollfx debug: %s on disposed surface %q", op, s.Name))
	}
}

// countSurfaces returns the number of surfaces in the subtree rooted at s.
func countSurfaces(s *Surface) int {
	n := 1
	for _, c := range s.children {
		n += countSurfaces(c)
	}
	return n
}
