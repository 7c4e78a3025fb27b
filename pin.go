package scrollfx

// Pinner freezes a surface to a fixed screen position. The engine calls Pin
// once, when pinning is requested, and consumes no result. A pinned surface
// still moves by its own Translate, so effects stay visible on it.
type Pinner interface {
	Pin(s *Surface, enabled bool)
}

// PinnerFunc adapts a function to the Pinner interface.
type PinnerFunc func(s *Surface, enabled bool)

// Pin calls f(s, enabled).
func (f PinnerFunc) Pin(s *Surface, enabled bool) { f(s, enabled) }

// PinSurface is the default Pinner. Enabling pins the surface to the screen
// position it occupies at zero scroll; disabling returns it to the document
// flow.
var PinSurface Pinner = PinnerFunc(pinSurface)

func pinSurface(s *Surface, enabled bool) {
	if !enabled {
		s.Pinned = false
		return
	}
	r := s.RestBounds()
	s.Pinned = true
	s.PinnedAt = Vec2{X: r.X, Y: r.Y}
}

// pinnedOrigin is the viewport-relative top-left of a pinned surface,
// including its presentation offset.
func (s *Surface) pinnedOrigin() Vec2 {
	return Vec2{X: s.PinnedAt.X + s.Translate.X, Y: s.PinnedAt.Y + s.Translate.Y}
}
