package scrollfx

import (
	"errors"
	"reflect"
	"testing"
)

// fakeHost is a Host whose frames fire only on tick.
type fakeHost struct {
	scrollY   float64
	height    float64
	transform string
	root      *Surface
	listeners []Listener
	frames    []func()
	requests  int
}

func newFakeHost(viewportHeight float64) *fakeHost {
	return &fakeHost{
		height:    viewportHeight,
		transform: TransformTranslate,
		root:      NewSurface("root", 0, 0, 0, 0),
	}
}

func (h *fakeHost) ScrollY() float64            { return h.scrollY }
func (h *fakeHost) ViewportHeight() float64     { return h.height }
func (h *fakeHost) TransformProperty() string   { return h.transform }
func (h *fakeHost) Lookup(name string) *Surface { return h.root.Find(name) }
func (h *fakeHost) Subscribe(l Listener)        { h.listeners = append(h.listeners, l) }

func (h *fakeHost) RequestFrame(fn func()) {
	h.requests++
	h.frames = append(h.frames, fn)
}

func (h *fakeHost) tick() {
	pending := h.frames
	h.frames = nil
	for _, fn := range pending {
		fn()
	}
}

func (h *fakeHost) scroll(y float64) {
	h.scrollY = y
	for _, l := range h.listeners {
		l.OnScroll()
	}
}

func (h *fakeHost) resize(height float64) {
	h.height = height
	for _, l := range h.listeners {
		l.OnResize()
	}
}

// progressRecorder is an Effect that records every snapshot it sees.
type progressRecorder struct {
	progress []float64
	absolute []float64
}

func (r *progressRecorder) effect(s *Snapshot, _ any) {
	r.progress = append(r.progress, s.Progress)
	r.absolute = append(r.absolute, s.Absolute)
}

func (r *progressRecorder) last() float64 {
	return r.progress[len(r.progress)-1]
}

// newTrackedHost returns a host with an 800px viewport and a 200px surface
// resting at 1000, the layout used throughout these tests.
func newTrackedHost() (*fakeHost, *Surface) {
	h := newFakeHost(800)
	s := NewSurface("panel", 0, 1000, 400, 200)
	h.root.AddChild(s)
	return h, s
}

// --- Construction ---

func TestNewResolvesByName(t *testing.T) {
	h, s := newTrackedHost()
	e := New(h, "panel")
	if !e.Active() {
		t.Fatalf("Active() = false, Err() = %v", e.Err())
	}
	if e.Surface() != s {
		t.Error("Surface() did not return the named surface")
	}
	if e.State() != StateTracking {
		t.Errorf("State() = %v, want tracking", e.State())
	}
	if len(h.listeners) != 1 {
		t.Errorf("listeners = %d, want 1", len(h.listeners))
	}
}

func TestNewResolvesBySurface(t *testing.T) {
	h, s := newTrackedHost()
	if e := New(h, s); !e.Active() || e.Surface() != s {
		t.Errorf("New with *Surface: Active = %v, Surface = %v", e.Active(), e.Surface())
	}
}

func TestNewInert(t *testing.T) {
	disposed := NewSurface("gone", 0, 0, 10, 10)
	disposed.Dispose()

	noTransform := newFakeHost(800)
	noTransform.root.AddChild(NewSurface("panel", 0, 0, 10, 10))
	noTransform.transform = ""

	tests := []struct {
		name   string
		host   Host
		target any
	}{
		{"unknown name", newFakeHost(800), "missing"},
		{"nil surface", newFakeHost(800), (*Surface)(nil)},
		{"disposed surface", newFakeHost(800), disposed},
		{"unsupported target type", newFakeHost(800), 42},
		{"no transform support", noTransform, "panel"},
		{"nil host", nil, "panel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec progressRecorder
			e := New(tt.host, tt.target)
			if e == nil {
				t.Fatal("New returned nil")
			}
			if e.Active() {
				t.Error("Active() = true, want false")
			}
			if !errors.Is(e.Err(), ErrUnavailable) {
				t.Errorf("Err() = %v, want ErrUnavailable", e.Err())
			}
			if e.State() != StateInert {
				t.Errorf("State() = %v, want inert", e.State())
			}

			// Every call is a no-op and must not panic.
			e.Use(EffectParallax, nil).
				UseFunc(rec.effect, nil).
				RegisterGlobalEffect("x", rec.effect).
				Pin()
			e.OnScroll()
			e.OnResize()
			e.Initialize()

			if fh, ok := tt.host.(*fakeHost); ok {
				if fh.requests != 0 {
					t.Errorf("inert engine requested %d frames", fh.requests)
				}
				if len(fh.listeners) != 0 {
					t.Error("inert engine subscribed to the host")
				}
			}
			if len(rec.progress) != 0 {
				t.Error("inert engine ran an effect")
			}
		})
	}
}

// --- Initialize ---

func TestInitializeClearsTranslateAndMeasuresRest(t *testing.T) {
	h, s := newTrackedHost()
	s.SetTranslate(30, -250)

	e := New(h, s)
	if s.Translate != (Vec2{}) {
		t.Errorf("Translate = %v, want cleared", s.Translate)
	}
	want := Geometry{TopAtZeroScroll: 1000, Height: 200}
	if e.Geometry() != want {
		t.Errorf("Geometry() = %+v, want %+v", e.Geometry(), want)
	}
}

func TestInitializeRecomputesImmediately(t *testing.T) {
	h, s := newTrackedHost()
	h.scrollY = 1000

	var rec progressRecorder
	e := New(h, s).UseFunc(rec.effect, nil)
	// Construction ran with an empty pipeline; re-initializing applies the
	// effect without any scroll.
	e.Initialize()

	if len(rec.progress) != 1 {
		t.Fatalf("runs = %d, want 1", len(rec.progress))
	}
	if !approxEqual(rec.last(), 0.8, epsilon) {
		t.Errorf("progress = %v, want 0.8", rec.last())
	}
	if h.requests != 0 {
		t.Errorf("Initialize requested %d frames, want 0", h.requests)
	}
}

// --- Scrolling ---

func TestScrollCoalescesToOneRunWithLatestOffset(t *testing.T) {
	h, s := newTrackedHost()
	var rec progressRecorder
	New(h, s).UseFunc(rec.effect, nil)

	for _, y := range []float64{300, 500, 700, 900, 1000} {
		h.scroll(y)
	}
	if h.requests != 1 {
		t.Fatalf("requests = %d, want 1", h.requests)
	}
	if len(rec.progress) != 0 {
		t.Fatal("effect ran before the frame")
	}

	h.tick()
	if len(rec.progress) != 1 {
		t.Fatalf("runs = %d, want 1", len(rec.progress))
	}
	if !approxEqual(rec.last(), 0.8, epsilon) {
		t.Errorf("progress = %v, want 0.8 (latest offset)", rec.last())
	}
	if !approxEqual(rec.absolute[0], 800, epsilon) {
		t.Errorf("absolute = %v, want 800", rec.absolute[0])
	}
}

func TestScrollAfterFrameBooksNewFrame(t *testing.T) {
	h, s := newTrackedHost()
	var rec progressRecorder
	New(h, s).UseFunc(rec.effect, nil)

	h.scroll(500)
	h.tick()
	h.scroll(600)
	h.tick()

	if h.requests != 2 {
		t.Errorf("requests = %d, want 2", h.requests)
	}
	if len(rec.progress) != 2 {
		t.Errorf("runs = %d, want 2", len(rec.progress))
	}
}

func TestEffectsRunInOrderEveryFrame(t *testing.T) {
	h, s := newTrackedHost()
	var order []string
	record := func(_ *Snapshot, opts any) { order = append(order, opts.(string)) }
	New(h, s).UseFunc(record, "A").UseFunc(record, "B").UseFunc(record, "C")

	want := []string{}
	for _, y := range []float64{300, 600, 900} {
		h.scroll(y)
		h.tick()
		want = append(want, "A", "B", "C")
	}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestVisibilityGateSkipsEffects(t *testing.T) {
	h, s := newTrackedHost()
	var rec progressRecorder
	e := New(h, s).UseFunc(rec.effect, nil)

	// Top edge at 1000-100 = 900, below an 800px viewport.
	h.scroll(100)
	h.tick()
	// Bottom edge at 1200-1300 = -100, above the viewport.
	h.scroll(1300)
	h.tick()

	if len(rec.progress) != 0 {
		t.Errorf("effects ran %d times for an out-of-view surface", len(rec.progress))
	}
	if st := e.Stats(); st.Skips < 2 {
		t.Errorf("Stats().Skips = %d, want >= 2", st.Skips)
	}
}

func TestVisibilityGateUsesLiveEdges(t *testing.T) {
	h, s := newTrackedHost()
	var rec progressRecorder
	New(h, s).UseFunc(rec.effect, nil)

	// At scroll 100 the rest top is below the fold, but a translation pulls
	// the live surface into view.
	s.SetTranslate(0, -300)
	h.scroll(100)
	h.tick()

	if len(rec.progress) != 1 {
		t.Fatalf("runs = %d, want 1", len(rec.progress))
	}
	// Progress is still computed from rest geometry.
	want := 1 - (900.0+200)/(800+200)
	if !approxEqual(rec.last(), want, epsilon) {
		t.Errorf("progress = %v, want %v", rec.last(), want)
	}
}

func TestDisposedSurfaceStopsEffects(t *testing.T) {
	h, s := newTrackedHost()
	var rec progressRecorder
	New(h, s).UseFunc(rec.effect, nil)

	s.Dispose()
	h.scroll(1000)
	h.tick()
	if len(rec.progress) != 0 {
		t.Error("effect ran for a disposed surface")
	}
}

// --- Resize ---

func TestResizeRemeasures(t *testing.T) {
	h, s := newTrackedHost()
	var rec progressRecorder
	e := New(h, s).UseFunc(rec.effect, nil)

	h.scroll(1000)
	h.tick()
	if !approxEqual(rec.last(), 0.8, epsilon) {
		t.Fatalf("progress = %v, want 0.8", rec.last())
	}

	// A layout change without a resize notification is not picked up.
	s.SetSize(400, 300)
	e.OnScroll()
	h.tick()
	if !approxEqual(rec.last(), 0.8, epsilon) {
		t.Errorf("progress before resize = %v, want 0.8", rec.last())
	}

	h.resize(800)
	want := 1 - 300.0/1100
	if !approxEqual(rec.last(), want, epsilon) {
		t.Errorf("progress after resize = %v, want %v", rec.last(), want)
	}
	if e.Geometry().Height != 300 {
		t.Errorf("Geometry().Height = %v, want 300", e.Geometry().Height)
	}
	if e.State() != StateTracking {
		t.Errorf("State() = %v, want tracking", e.State())
	}
}

func TestResizeUsesNewViewportHeight(t *testing.T) {
	h, s := newTrackedHost()
	var rec progressRecorder
	New(h, s).UseFunc(rec.effect, nil)
	h.scrollY = 1000

	h.resize(1000)
	want := 1 - 200.0/1200
	if !approxEqual(rec.last(), want, epsilon) {
		t.Errorf("progress = %v, want %v", rec.last(), want)
	}
}

// --- Use ---

func TestUseUnknownEffectFailsFast(t *testing.T) {
	h, s := newTrackedHost()
	var rec progressRecorder
	e := New(h, s).Use("nope", nil).UseFunc(rec.effect, nil).Use("also-missing", nil)

	if !errors.Is(e.Err(), ErrUnknownEffect) {
		t.Fatalf("Err() = %v, want ErrUnknownEffect", e.Err())
	}
	if e.pipeline.Len() != 1 {
		t.Errorf("pipeline length = %d, want 1", e.pipeline.Len())
	}
	if !e.Active() {
		t.Error("an unknown effect should not deactivate the engine")
	}
}

func TestUseBindsByReference(t *testing.T) {
	h, s := newTrackedHost()
	reg := NewEmptyRegistry()
	var got []string
	reg.Register("fx", func(*Snapshot, any) { got = append(got, "old") })

	e := New(h, s, WithRegistry(reg)).Use("fx", nil)
	reg.Register("fx", func(*Snapshot, any) { got = append(got, "new") })
	e.Use("fx", nil)

	h.scroll(1000)
	h.tick()
	if !reflect.DeepEqual(got, []string{"old", "new"}) {
		t.Errorf("got = %v, want [old new]", got)
	}
}

func TestUseBuiltinParallax(t *testing.T) {
	h, s := newTrackedHost()
	New(h, s).Use(EffectParallax, ParallaxOptions{Speed: Speed(0.5)})

	h.scroll(1000)
	h.tick()
	if s.Translate.Y != 400 {
		t.Errorf("Translate.Y = %v, want 400", s.Translate.Y)
	}
}

func TestRegisterGlobalEffectIsShared(t *testing.T) {
	h := newFakeHost(800)
	a := NewSurface("a", 0, 1000, 100, 200)
	b := NewSurface("b", 0, 1000, 100, 200)
	h.root.AddChild(a)
	h.root.AddChild(b)
	reg := NewEmptyRegistry()

	var hits int
	New(h, a, WithRegistry(reg)).RegisterGlobalEffect("count", func(*Snapshot, any) { hits++ })
	eb := New(h, b, WithRegistry(reg)).Use("count", nil)
	if eb.Err() != nil {
		t.Fatalf("Err() = %v", eb.Err())
	}

	h.scroll(1000)
	h.tick()
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
}

// --- Pinning ---

func TestPinCallsPinnerOnce(t *testing.T) {
	h, s := newTrackedHost()
	var calls int
	var gotSurface *Surface
	var gotFlag bool
	pinner := PinnerFunc(func(ps *Surface, enabled bool) {
		calls++
		gotSurface, gotFlag = ps, enabled
	})

	e := New(h, s, WithPinner(pinner), WithPin(true))
	e.Pin().Pin()

	if calls != 1 {
		t.Fatalf("pinner calls = %d, want 1", calls)
	}
	if gotSurface != s || !gotFlag {
		t.Errorf("pinner got (%v, %v), want (panel, true)", gotSurface, gotFlag)
	}
	if e.pipeline.Len() != 0 {
		t.Error("pinning must not add an effect")
	}
}

func TestPinWithoutOptionIsLazy(t *testing.T) {
	h, s := newTrackedHost()
	var calls int
	e := New(h, s, WithPinner(PinnerFunc(func(*Surface, bool) { calls++ })))
	if calls != 0 {
		t.Fatalf("pinner called %d times without a pin request", calls)
	}
	e.Pin()
	if calls != 1 {
		t.Errorf("pinner calls = %d, want 1", calls)
	}
}

// --- Observer and stats ---

type observerFunc func(ProgressEvent)

func (f observerFunc) ObserveProgress(ev ProgressEvent) { f(ev) }

func TestObserverReceivesProgress(t *testing.T) {
	h, s := newTrackedHost()
	var events []ProgressEvent
	New(h, s, WithObserver(observerFunc(func(ev ProgressEvent) { events = append(events, ev) })))

	h.scroll(100) // out of view: no event
	h.tick()
	h.scroll(1000)
	h.tick()

	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.SurfaceID != s.ID || ev.SurfaceName != "panel" {
		t.Errorf("event surface = (%d, %q), want (%d, panel)", ev.SurfaceID, ev.SurfaceName, s.ID)
	}
	if !approxEqual(ev.Progress, 0.8, epsilon) || !approxEqual(ev.Absolute, 800, epsilon) {
		t.Errorf("event = %+v, want progress 0.8 absolute 800", ev)
	}
}

func TestStatsCounts(t *testing.T) {
	h, s := newTrackedHost()
	e := New(h, s)

	h.scroll(900)
	h.scroll(1000)
	h.tick()
	h.resize(800)

	st := e.Stats()
	want := EngineStats{
		Notifications: 2,
		Requests:      1,
		Frames:        1,
		Runs:          2, // the frame and the resize
		Skips:         1, // construction at scroll 0
		Measures:      2,
	}
	if st != want {
		t.Errorf("Stats() = %+v, want %+v", st, want)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateUninitialized: "uninitialized",
		StateMeasuring:     "measuring",
		StateTracking:      "tracking",
		StateInert:         "inert",
		State(99):          "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
