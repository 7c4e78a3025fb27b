package scrollfx

// Geometry is the rest geometry of a tracked surface: where its top edge sits
// when the document is scrolled to zero, and its rendered height. It is always
// measured with the surface's own Translate cleared and is replaced wholesale
// when the viewport is resized.
type Geometry struct {
	TopAtZeroScroll float64
	Height          float64
}

// measureGeometry captures the rest geometry of s.
func measureGeometry(s *Surface) Geometry {
	r := s.RestBounds()
	return Geometry{TopAtZeroScroll: r.Y, Height: r.Height}
}

// Edges are a surface's live top and bottom edges relative to the viewport
// top, including any applied translation.
type Edges struct {
	Top, Bottom float64
}

// liveEdges returns the current viewport-relative edges of s. A pinned
// surface sits at its pinned screen position whatever the scroll offset.
func liveEdges(s *Surface, scrollY float64) Edges {
	r := s.DocumentBounds()
	if s.Pinned {
		top := s.pinnedOrigin().Y
		return Edges{Top: top, Bottom: top + r.Height}
	}
	return Edges{Top: r.Top() - scrollY, Bottom: r.Bottom() - scrollY}
}

// Snapshot is the per-frame progress state handed to every effect. It is
// built fresh for each recomputation and must not be retained by effects.
type Snapshot struct {
	// Progress is 0 when the surface's top edge touches the bottom of the
	// viewport and 1 when its bottom edge leaves the top. Not clamped.
	Progress float64
	// Absolute is the signed pixel distance the surface's rest top has
	// travelled above the viewport bottom.
	Absolute float64

	Surface        *Surface
	Geometry       Geometry
	ViewportHeight float64
}

// Compute maps the scroll position to a progress snapshot for surface
// geometry g. It returns false, leaving the snapshot zero, when the surface's
// live edges put it entirely below or entirely above the viewport.
func Compute(g Geometry, live Edges, scrollY, viewportHeight float64) (Snapshot, bool) {
	if live.Top > viewportHeight || live.Bottom < 0 {
		return Snapshot{}, false
	}

	start := g.TopAtZeroScroll - scrollY

	return Snapshot{
		Progress:       1 - (start+g.Height)/(viewportHeight+g.Height),
		Absolute:       viewportHeight - start,
		Geometry:       g,
		ViewportHeight: viewportHeight,
	}, true
}
