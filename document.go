package scrollfx

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// TransformTranslate is the transform property reported by documents that
// support surface translation.
const TransformTranslate = "translate"

// Listener receives a Host's scroll and resize notifications.
type Listener interface {
	OnScroll()
	OnResize()
}

// Host is the environment an Engine runs in: a scrolling viewport, a set of
// named surfaces, and a frame clock.
type Host interface {
	FrameRequester
	// ScrollY returns the vertical scroll offset in pixels.
	ScrollY() float64
	// ViewportHeight returns the visible height in pixels.
	ViewportHeight() float64
	// TransformProperty names the host's transform mechanism, or "" when
	// surfaces cannot be transformed.
	TransformProperty() string
	// Lookup resolves a surface by name, or returns nil.
	Lookup(name string) *Surface
	// Subscribe registers l for scroll and resize notifications.
	Subscribe(l Listener)
}

// Document is the default Host: a tree of surfaces viewed through one
// vertically scrolling Camera and clocked by Update.
type Document struct {
	root   *Surface
	camera *Camera
	debug  bool

	// ClearColor fills the screen before surfaces are drawn.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	transformProperty string
	listeners         []Listener
	classColors       map[string]Color
	classOrder        []string

	// Frame clock: callbacks requested during frame N run in frame N+1.
	frameQueue []func()
	frameSpare []func()
	frame      uint64

	// Scripted input
	injectQueue     []syntheticInput
	testRunner      *TestRunner
	screenshotQueue []string
}

// Compile-time check.
var _ Host = (*Document)(nil)

// NewDocument creates a document with a root surface and a camera whose
// viewport is width x height.
func NewDocument(width, height float64) *Document {
	return &Document{
		root:              NewSurface("root", 0, 0, width, 0),
		camera:            newCamera(Rect{Width: width, Height: height}),
		transformProperty: TransformTranslate,
		ScreenshotDir:     "screenshots",
	}
}

// Root returns the document's root surface.
func (d *Document) Root() *Surface {
	return d.root
}

// Camera returns the document's camera.
func (d *Document) Camera() *Camera {
	return d.camera
}

// ScrollY returns the camera's vertical scroll offset.
func (d *Document) ScrollY() float64 {
	return d.camera.Y
}

// ViewportHeight returns the camera's viewport height.
func (d *Document) ViewportHeight() float64 {
	return d.camera.Viewport.Height
}

// TransformProperty returns the document's transform mechanism name.
func (d *Document) TransformProperty() string {
	return d.transformProperty
}

// SetTransformProperty overrides the transform mechanism name. An empty name
// makes engines created afterwards inert.
func (d *Document) SetTransformProperty(name string) {
	d.transformProperty = name
}

// Lookup returns the first surface named name, searching depth-first from
// the root, or nil.
func (d *Document) Lookup(name string) *Surface {
	return d.root.Find(name)
}

// Subscribe registers l for scroll and resize notifications. Listeners are
// notified in subscription order.
func (d *Document) Subscribe(l Listener) {
	d.listeners = append(d.listeners, l)
}

// RequestFrame schedules fn to run during the next Update.
func (d *Document) RequestFrame(fn func()) {
	d.frameQueue = append(d.frameQueue, fn)
}

// Frame returns the number of completed Update calls.
func (d *Document) Frame() uint64 {
	return d.frame
}

// SetContentSize bounds scrolling to a width x height document.
func (d *Document) SetContentSize(width, height float64) {
	d.camera.SetBounds(Rect{Width: width, Height: height})
}

// ScrollTo jumps to vertical offset y, cancelling any smooth scroll.
// Listeners are notified only if the offset changed.
func (d *Document) ScrollTo(y float64) {
	d.camera.StopScroll()
	prev := d.camera.Y
	d.camera.Y = y
	d.camera.clampToBounds()
	if d.camera.Y != prev {
		d.notifyScroll()
	}
}

// ScrollBy scrolls by dy pixels.
func (d *Document) ScrollBy(dy float64) {
	d.ScrollTo(d.camera.Y + dy)
}

// SmoothScrollTo animates the scroll offset to y over duration seconds.
// Listeners are notified on every Update the offset moves.
func (d *Document) SmoothScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	d.camera.ScrollTo(y, duration, easeFn)
}

// Resize changes the viewport size and notifies listeners.
func (d *Document) Resize(width, height float64) {
	if d.camera.Viewport.Width == width && d.camera.Viewport.Height == height {
		return
	}
	d.camera.Viewport.Width = width
	d.camera.Viewport.Height = height
	d.camera.clampToBounds()
	for _, l := range d.listeners {
		l.OnResize()
	}
}

// SetClassColor tints surfaces carrying class with c when drawn. The most
// recently set class wins when a surface has several.
func (d *Document) SetClassColor(class string, c Color) {
	if d.classColors == nil {
		d.classColors = make(map[string]Color)
	}
	if _, ok := d.classColors[class]; ok {
		for i, name := range d.classOrder {
			if name == class {
				d.classOrder = append(d.classOrder[:i], d.classOrder[i+1:]...)
				break
			}
		}
	}
	d.classColors[class] = c
	d.classOrder = append(d.classOrder, class)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-surface
// access panics and per-frame stats are logged at debug level.
func (d *Document) SetDebugMode(enabled bool) {
	d.debug = enabled
	globalDebug = enabled
}

func (d *Document) notifyScroll() {
	for _, l := range d.listeners {
		l.OnScroll()
	}
}

// Update advances one frame: scripted input, smooth scrolling, world
// transforms, then every frame callback requested before this call.
func (d *Document) Update() {
	var stats debugStats
	var t0 time.Time
	if d.debug {
		t0 = time.Now()
	}

	if d.testRunner != nil {
		d.testRunner.step(d)
	}
	d.processInjectedInput()

	dt := float32(1.0 / float64(ebiten.TPS()))
	if d.camera.update(dt) {
		stats.scrollMoved = true
		d.notifyScroll()
	}

	stats.callbacks = d.runFrameCallbacks()
	updateWorldTransform(d.root, identityTransform, false)
	d.frame++

	if d.debug {
		stats.frameTime = time.Since(t0)
		stats.surfaces = countSurfaces(d.root)
		d.debugLog(stats)
	}
}

// runFrameCallbacks drains the callbacks queued before this frame. Callbacks
// queued while draining land in the other buffer and wait for the next frame.
func (d *Document) runFrameCallbacks() int {
	queue := d.frameQueue
	d.frameQueue = d.frameSpare[:0]
	for i, fn := range queue {
		fn()
		queue[i] = nil
	}
	d.frameSpare = queue[:0]
	return len(queue)
}
