package scrollfx

// surfaceIDCounter is a plain counter; scrollfx is single-threaded.
var surfaceIDCounter uint32

func nextSurfaceID() uint32 {
	surfaceIDCounter++
	return surfaceIDCounter
}

// Surface is a rectangular element of a Document. Surfaces form a tree; a
// child's X and Y are relative to its parent. Effects mutate a surface's
// presentation through Translate, Alpha and its class set, never through X
// and Y, so rest geometry stays measurable.
type Surface struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Surface
	children []*Surface

	// Layout (local, untransformed)
	X, Y          float64
	Width, Height float64
	ScaleX        float64
	ScaleY        float64

	// Presentation, written by effects.
	Translate Vec2
	Alpha     float64
	Color     Color
	Visible   bool

	// Pinning: when Pinned, the surface is drawn at PinnedAt in screen space
	// regardless of scroll.
	Pinned   bool
	PinnedAt Vec2

	// Metadata
	UserData any

	classes map[string]struct{}

	worldTransform [6]float64
	transformDirty bool
	disposed       bool
}

// NewSurface creates a surface with the given name, local position and size.
func NewSurface(name string, x, y, w, h float64) *Surface {
	return &Surface{
		ID:             nextSurfaceID(),
		Name:           name,
		X:              x,
		Y:              y,
		Width:          w,
		Height:         h,
		ScaleX:         1,
		ScaleY:         1,
		Alpha:          1,
		Color:          ColorWhite,
		Visible:        true,
		transformDirty: true,
	}
}

// --- Tree manipulation ---

// AddChild appends child to this surface's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this surface (cycle).
func (s *Surface) AddChild(child *Surface) {
	if child == nil {
		panic("scrollfx: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(s, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, s) {
		panic("scrollfx: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = s
	s.children = append(s.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this surface.
// Panics if child.Parent != s.
func (s *Surface) RemoveChild(child *Surface) {
	if child.Parent != s {
		panic("scrollfx: child's parent is not this surface")
	}
	s.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this surface from its parent.
// No-op if this surface has no parent.
func (s *Surface) RemoveFromParent() {
	if s.Parent == nil {
		return
	}
	s.Parent.RemoveChild(s)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (s *Surface) Children() []*Surface {
	return s.children
}

// Find returns the first surface in this subtree (depth-first, including s)
// whose Name equals name, or nil.
func (s *Surface) Find(name string) *Surface {
	if s.disposed {
		return nil
	}
	if s.Name == name {
		return s
	}
	for _, c := range s.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Classes ---

// AddClass adds a class to the surface. Adding a present class is a no-op.
func (s *Surface) AddClass(class string) {
	if s.classes == nil {
		s.classes = make(map[string]struct{})
	}
	s.classes[class] = struct{}{}
}

// RemoveClass removes a class from the surface. Removing an absent class is a no-op.
func (s *Surface) RemoveClass(class string) {
	delete(s.classes, class)
}

// HasClass reports whether the surface carries class.
func (s *Surface) HasClass(class string) bool {
	_, ok := s.classes[class]
	return ok
}

// --- Disposal ---

// Dispose removes this surface from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.RemoveFromParent()
	s.dispose()
}

func (s *Surface) dispose() {
	s.disposed = true
	s.ID = 0
	for _, child := range s.children {
		child.Parent = nil
		child.dispose()
	}
	s.children = nil
	s.Parent = nil
	s.classes = nil
	s.UserData = nil
}

// IsDisposed returns true if this surface has been disposed.
func (s *Surface) IsDisposed() bool {
	return s.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of s.
func isAncestor(candidate, s *Surface) bool {
	for p := s; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from s.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (s *Surface) removeChildByPtr(child *Surface) {
	for i, c := range s.children {
		if c == child {
			copy(s.children[i:], s.children[i+1:])
			s.children[len(s.children)-1] = nil
			s.children = s.children[:len(s.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on s and all its descendants.
func markSubtreeDirty(s *Surface) {
	s.transformDirty = true
	for _, child := range s.children {
		markSubtreeDirty(child)
	}
}
