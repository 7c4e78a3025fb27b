package scrollfx

import (
	"errors"
	"log/slog"
)

// ErrUnavailable is reported by an inert engine: its target surface could not
// be resolved, or the host has no transform mechanism.
var ErrUnavailable = errors.New("scrollfx: surface not found or transforms unsupported")

// Observer receives a ProgressEvent after every frame in which an engine's
// effects ran.
type Observer interface {
	ObserveProgress(ev ProgressEvent)
}

// ProgressEvent describes one recomputation of a tracked surface.
type ProgressEvent struct {
	SurfaceID   uint32
	SurfaceName string
	Progress    float64
	Absolute    float64
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithRegistry makes the engine resolve effect names in r instead of the
// default registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithPin pins the surface once the engine is initialized.
func WithPin(enabled bool) Option {
	return func(e *Engine) { e.pinRequested = enabled }
}

// WithPinner replaces PinSurface as the pinning collaborator.
func WithPinner(p Pinner) Option {
	return func(e *Engine) { e.pinner = p }
}

// WithObserver attaches an Observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets the engine's logger. Defaults to the package Logger; nil
// keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine links the scroll position of one Host to the presentation of one
// Surface. Every scroll notification books at most one recomputation per
// frame; each recomputation runs the engine's effects in the order they were
// added.
//
// An Engine that failed to construct is inert: Active reports false, Err
// reports ErrUnavailable, and every method is a no-op.
type Engine struct {
	host     Host
	surface  *Surface
	registry *Registry
	pipeline Pipeline
	frames   *FrameScheduler

	geometry Geometry
	scrollY  float64
	state    State
	err      error

	pinRequested bool
	pinned       bool
	pinner       Pinner
	observer     Observer
	log          *slog.Logger

	stats EngineStats
}

// New creates an engine tracking target on host. target is either a
// *Surface or a string resolved with host.Lookup. New never returns nil;
// check Active or Err to learn whether the engine is live.
func New(host Host, target any, opts ...Option) *Engine {
	e := &Engine{
		host:     host,
		registry: defaultRegistry,
		pinner:   PinSurface,
		log:      Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	var surface *Surface
	if host != nil {
		surface = resolveSurface(host, target)
	}
	if surface == nil || host.TransformProperty() == "" {
		e.state = StateInert
		e.err = ErrUnavailable
		e.log.Warn("scroll engine inactive", "target", target, "err", e.err)
		return e
	}

	e.surface = surface
	e.frames = NewFrameScheduler(host, e.onFrame)
	e.scrollY = host.ScrollY()
	host.Subscribe(e)

	e.Initialize()
	if e.pinRequested {
		e.Pin()
	}
	return e
}

// resolveSurface maps a New target to a surface, or nil.
func resolveSurface(host Host, target any) *Surface {
	switch t := target.(type) {
	case *Surface:
		if t == nil || t.IsDisposed() {
			return nil
		}
		return t
	case string:
		return host.Lookup(t)
	default:
		return nil
	}
}

// Active reports whether the engine is tracking a surface.
func (e *Engine) Active() bool {
	return e.state != StateInert
}

// Err returns ErrUnavailable for an inert engine, otherwise the first error
// recorded by Use, or nil.
func (e *Engine) Err() error {
	return e.err
}

// State returns the engine's lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Surface returns the tracked surface, or nil for an inert engine.
func (e *Engine) Surface() *Surface {
	return e.surface
}

// Geometry returns the rest geometry captured at the last Initialize.
func (e *Engine) Geometry() Geometry {
	return e.geometry
}

// Initialize clears the surface's translation, re-measures its rest geometry
// and immediately recomputes, so effects reflect the current scroll position
// without waiting for a scroll.
func (e *Engine) Initialize() {
	if e.state == StateInert {
		return
	}
	e.state = StateMeasuring
	e.surface.ClearTranslate()
	e.geometry = measureGeometry(e.surface)
	e.scrollY = e.host.ScrollY()
	e.stats.Measures++
	e.state = StateTracking

	e.log.Debug("surface measured",
		"surface", e.surface.Name,
		"top", e.geometry.TopAtZeroScroll,
		"height", e.geometry.Height)

	e.recompute()
}

// OnScroll records the host's scroll offset and books a frame.
func (e *Engine) OnScroll() {
	if e.state == StateInert {
		return
	}
	e.scrollY = e.host.ScrollY()
	e.frames.Notify()
}

// OnResize re-runs Initialize in full.
func (e *Engine) OnResize() {
	e.Initialize()
}

// Use appends the effect registered under name, bound to opts. The name is
// resolved now; later re-registrations do not affect this entry. An unknown
// name adds nothing and records an ErrUnknownEffect retrievable with Err.
func (e *Engine) Use(name string, opts any) *Engine {
	if e.state == StateInert {
		return e
	}
	fn, err := e.registry.resolve(name)
	if err != nil {
		e.log.Warn("effect rejected", "surface", e.surface.Name, "err", err)
		if e.err == nil {
			e.err = err
		}
		return e
	}
	e.pipeline.Append(fn, opts)
	return e
}

// UseFunc appends fn bound to opts.
func (e *Engine) UseFunc(fn Effect, opts any) *Engine {
	if e.state == StateInert || fn == nil {
		return e
	}
	e.pipeline.Append(fn, opts)
	return e
}

// RegisterGlobalEffect registers fn under name in the engine's registry,
// which is shared with every engine using the same registry.
func (e *Engine) RegisterGlobalEffect(name string, fn Effect) *Engine {
	if e.state == StateInert {
		return e
	}
	e.registry.Register(name, fn)
	return e
}

// Pin hands the surface to the pinning collaborator. Only the first call has
// an effect.
func (e *Engine) Pin() *Engine {
	if e.state == StateInert || e.pinned || e.pinner == nil {
		return e
	}
	e.pinned = true
	e.pinner.Pin(e.surface, true)
	return e
}

// onFrame is the FrameScheduler callback.
func (e *Engine) onFrame() {
	e.stats.Frames++
	e.recompute()
}

// recompute runs Compute against live measurements and, unless the surface
// is out of view, the effect pipeline.
func (e *Engine) recompute() {
	if e.surface.IsDisposed() {
		return
	}
	live := liveEdges(e.surface, e.host.ScrollY())
	snap, ok := Compute(e.geometry, live, e.scrollY, e.host.ViewportHeight())
	if !ok {
		e.stats.Skips++
		return
	}
	snap.Surface = e.surface
	e.pipeline.Run(&snap)
	e.stats.Runs++

	if e.observer != nil {
		e.observer.ObserveProgress(ProgressEvent{
			SurfaceID:   e.surface.ID,
			SurfaceName: e.surface.Name,
			Progress:    snap.Progress,
			Absolute:    snap.Absolute,
		})
	}
}
