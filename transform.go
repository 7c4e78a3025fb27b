package scrollfx

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the surface's
// layout and, when withTranslate is set, its presentation offset.
// Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Scale -> Translate(X + Translate.X, Y + Translate.Y)
func computeLocalTransform(s *Surface, withTranslate bool) [6]float64 {
	tx, ty := s.X, s.Y
	if withTranslate {
		tx += s.Translate.X
		ty += s.Translate.Y
	}
	return [6]float64{s.ScaleX, 0, 0, s.ScaleY, tx, ty}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes the cached worldTransform of s and its
// subtree. parentRecomputed forces recomputation of s even if it's not dirty.
func updateWorldTransform(s *Surface, parentTransform [6]float64, parentRecomputed bool) {
	recompute := s.transformDirty || parentRecomputed
	if recompute {
		s.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(s, true))
		s.transformDirty = false
	}

	for _, child := range s.children {
		updateWorldTransform(child, s.worldTransform, recompute)
	}
}

// worldTransformOf walks the parent chain and returns the document-space
// transform of s without touching any cache. Ancestors always contribute
// their Translate; s contributes its own only when withOwnTranslate is set.
func worldTransformOf(s *Surface, withOwnTranslate bool) [6]float64 {
	m := computeLocalTransform(s, withOwnTranslate)
	for p := s.Parent; p != nil; p = p.Parent {
		m = multiplyAffine(computeLocalTransform(p, true), m)
	}
	return m
}

// worldAABB computes the axis-aligned bounding box for a rectangle of size (w, h)
// transformed by the given affine matrix. Zero allocations.
func worldAABB(transform [6]float64, w, h float64) Rect {
	a, b, cc, d, tx, ty := transform[0], transform[2], transform[1], transform[3], transform[4], transform[5]

	// Transform four corners: (0,0), (w,0), (w,h), (0,h)
	x0, y0 := tx, ty
	x1, y1 := a*w+tx, cc*w+ty
	x2, y2 := a*w+b*h+tx, cc*w+d*h+ty
	x3, y3 := b*h+tx, d*h+ty

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// DocumentBounds returns the surface's current bounding box in document
// space, including every applied Translate.
func (s *Surface) DocumentBounds() Rect {
	return worldAABB(worldTransformOf(s, true), s.Width, s.Height)
}

// RestBounds returns the surface's bounding box in document space with its
// own Translate treated as zero.
func (s *Surface) RestBounds() Rect {
	return worldAABB(worldTransformOf(s, false), s.Width, s.Height)
}

// --- Transform property setters ---

// SetPosition sets the surface's local X and Y and marks it dirty.
func (s *Surface) SetPosition(x, y float64) {
	s.X = x
	s.Y = y
	s.transformDirty = true
}

// SetSize sets the surface's Width and Height.
func (s *Surface) SetSize(w, h float64) {
	s.Width = w
	s.Height = h
}

// SetScale sets the surface's ScaleX and ScaleY and marks it dirty.
func (s *Surface) SetScale(sx, sy float64) {
	s.ScaleX = sx
	s.ScaleY = sy
	s.transformDirty = true
}

// SetTranslate sets the presentation offset and marks the surface dirty.
func (s *Surface) SetTranslate(x, y float64) {
	s.Translate = Vec2{X: x, Y: y}
	s.transformDirty = true
}

// ClearTranslate resets the presentation offset to zero.
func (s *Surface) ClearTranslate() {
	s.SetTranslate(0, 0)
}

// SetAlpha sets the surface's alpha.
func (s *Surface) SetAlpha(a float64) {
	s.Alpha = a
}

// MarkDirty marks the surface's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (s *Surface) MarkDirty() {
	s.transformDirty = true
}

// LocalToDocument converts a local-space point to document space using the
// transform cached at the last Document.Update.
func (s *Surface) LocalToDocument(lx, ly float64) (dx, dy float64) {
	return transformPoint(s.worldTransform, lx, ly)
}
