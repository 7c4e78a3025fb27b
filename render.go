package scrollfx

import "github.com/hajimehoshi/ebiten/v2"

// DrawItem is one surface as it appears on screen.
type DrawItem struct {
	Surface *Surface
	// Screen is the surface's screen-space bounding box.
	Screen Rect
	// Color is the surface color after class tints and inherited alpha.
	Color Color
}

// Walk visits every visible, non-empty surface in paint order (parents
// before children, siblings in insertion order). Transforms are those cached
// by the last Update.
func (d *Document) Walk(fn func(item DrawItem)) {
	d.walk(d.root, 1.0, fn)
}

func (d *Document) walk(s *Surface, parentAlpha float64, fn func(item DrawItem)) {
	if !s.Visible || s.disposed {
		return
	}
	alpha := parentAlpha * s.Alpha

	if s.Width > 0 && s.Height > 0 {
		r := worldAABB(s.worldTransform, s.Width, s.Height)
		if s.Pinned {
			at := s.pinnedOrigin()
			r.X = d.camera.Viewport.X + at.X
			r.Y = d.camera.Viewport.Y + at.Y
		} else {
			r.X, r.Y = d.camera.DocumentToScreen(r.X, r.Y)
		}
		c := d.surfaceColor(s)
		c.A *= alpha
		fn(DrawItem{Surface: s, Screen: r, Color: c})
	}

	for _, child := range s.children {
		d.walk(child, alpha, fn)
	}
}

// surfaceColor returns the tint of the most recently configured class the
// surface carries, or its own Color.
func (d *Document) surfaceColor(s *Surface) Color {
	for i := len(d.classOrder) - 1; i >= 0; i-- {
		class := d.classOrder[i]
		if s.HasClass(class) {
			return d.classColors[class]
		}
	}
	return s.Color
}

// Draw renders every visible surface as a solid rectangle, clipped to the
// camera viewport, then captures any queued screenshots.
func (d *Document) Draw(screen *ebiten.Image) {
	if d.ClearColor.A > 0 {
		screen.Fill(d.ClearColor.toRGBA())
	}

	visible := d.camera.Viewport
	d.Walk(func(item DrawItem) {
		if !item.Surface.Pinned && !item.Screen.Intersects(visible) {
			return
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(item.Screen.Width, item.Screen.Height)
		op.GeoM.Translate(item.Screen.X, item.Screen.Y)
		op.ColorScale.ScaleWithColor(item.Color.toRGBA())
		screen.DrawImage(whitePixel, &op)
	})

	d.flushScreenshots(screen)
}
