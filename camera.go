package scrollfx

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is the scrolling window onto a Document. X and Y are the document
// coordinates of the viewport's top-left corner, so Y is the vertical scroll
// offset.
type Camera struct {
	X, Y float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// BoundsEnabled clamps the scroll position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the document-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	scrollTween *gween.Tween
}

// newCamera creates a Camera scrolled to the top with the given viewport.
func newCamera(viewport Rect) *Camera {
	return &Camera{Viewport: viewport}
}

// ScrollY returns the current vertical scroll offset.
func (c *Camera) ScrollY() float64 {
	return c.Y
}

// ScrollTo animates the vertical scroll offset to y over duration seconds.
// Any scroll animation already running is replaced.
func (c *Camera) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = gween.New(float32(c.Y), float32(y), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// StopScroll cancels a running ScrollTo animation, leaving the camera where it is.
func (c *Camera) StopScroll() {
	c.scrollTween = nil
}

// SetBounds enables scroll clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.clampToBounds()
}

// ClearBounds disables scroll clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// update advances the scroll animation and bounds clamping. Called from
// Document.Update. Reports whether the scroll position changed.
func (c *Camera) update(dt float32) bool {
	prevX, prevY := c.X, c.Y

	if c.scrollTween != nil {
		val, done := c.scrollTween.Update(dt)
		c.Y = float64(val)
		if done {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}

	return c.X != prevX || c.Y != prevY
}

// clampToBounds restricts the scroll position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	if !c.BoundsEnabled {
		return
	}
	minX := c.Bounds.X
	maxX := c.Bounds.X + c.Bounds.Width - c.Viewport.Width
	minY := c.Bounds.Y
	maxY := c.Bounds.Y + c.Bounds.Height - c.Viewport.Height

	// Content smaller than the viewport pins to the top-left.
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	c.X = math.Max(minX, math.Min(c.X, maxX))
	c.Y = math.Max(minY, math.Min(c.Y, maxY))
}

// DocumentToScreen converts document coordinates to screen coordinates.
func (c *Camera) DocumentToScreen(dx, dy float64) (sx, sy float64) {
	return dx - c.X + c.Viewport.X, dy - c.Y + c.Viewport.Y
}

// ScreenToDocument converts screen coordinates to document coordinates.
func (c *Camera) ScreenToDocument(sx, sy float64) (dx, dy float64) {
	return sx - c.Viewport.X + c.X, sy - c.Viewport.Y + c.Y
}

// VisibleBounds returns the document-space rectangle currently in view.
func (c *Camera) VisibleBounds() Rect {
	return Rect{X: c.X, Y: c.Y, Width: c.Viewport.Width, Height: c.Viewport.Height}
}
