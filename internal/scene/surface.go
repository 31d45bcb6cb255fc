package scene

import (
	"time"
)

// DefaultMinHitRadius keeps small elements reachable by the pointer.
const DefaultMinHitRadius = 6.0

// Overlay is a layer drawn above every element. Activations inside it are
// contained and never reach elements or surface handlers.
type Overlay interface {
	PanelContains(p Point) bool
}

// Surface is the shared drawing area for one view.
// It is driven from the UI loop only and is not safe for concurrent use.
type Surface struct {
	width  float64
	height float64

	elements    []*Element
	docHandlers []func(ev *Event)
	overlay     Overlay

	hovered    *Element
	pointer    Point
	hasPointer bool

	elapsed      time.Duration
	minHitRadius float64
}

// NewSurface creates an empty surface of the given pixel size. overlay may be nil.
func NewSurface(width, height float64, overlay Overlay) *Surface {
	return &Surface{
		width:        width,
		height:       height,
		overlay:      overlay,
		minHitRadius: DefaultMinHitRadius,
	}
}

// Size returns the surface size in pixels.
func (s *Surface) Size() (width, height float64) {
	return s.width, s.height
}

// Center returns the middle of the surface.
func (s *Surface) Center() Point {
	return Point{X: s.width / 2, Y: s.height / 2}
}

// Resize changes the surface size. Elements keep their coordinates; callers
// re-render when placement depends on the size.
func (s *Surface) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// SetMinHitRadius sets the smallest pointer target radius.
func (s *Surface) SetMinHitRadius(r float64) {
	s.minHitRadius = r
}

// Add appends e above every existing element and returns it.
func (s *Surface) Add(e *Element) *Element {
	s.elements = append(s.elements, e)
	return e
}

// OnActivate registers a surface-level activation handler. It runs after
// the target element's handler unless propagation was stopped.
func (s *Surface) OnActivate(fn func(ev *Event)) {
	s.docHandlers = append(s.docHandlers, fn)
}

// Clear removes all elements and surface handlers and ends any hover.
func (s *Surface) Clear() {
	s.setHovered(nil, Point{})
	s.elements = nil
	s.docHandlers = nil
}

// Elements returns the elements in paint order.
func (s *Surface) Elements() []*Element {
	return s.elements
}

// Find returns the element with the given id, or nil.
func (s *Surface) Find(id string) *Element {
	for _, e := range s.elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// WithClass returns the elements carrying class, in paint order.
func (s *Surface) WithClass(class string) []*Element {
	var out []*Element
	for _, e := range s.elements {
		if e.HasClass(class) {
			out = append(out, e)
		}
	}
	return out
}

// Elapsed returns the animation clock.
func (s *Surface) Elapsed() time.Duration {
	return s.elapsed
}

// Advance moves the animation clock forward and re-evaluates hover under a
// stationary pointer, since elements may have moved beneath it.
func (s *Surface) Advance(d time.Duration) {
	s.elapsed += d
	if s.hasPointer {
		s.updateHover(s.pointer)
	}
}

// Hovered returns the element under the pointer, or nil.
func (s *Surface) Hovered() *Element {
	return s.hovered
}

// PointerMove dispatches hover start/end on target changes, then hover move.
func (s *Surface) PointerMove(p Point) {
	s.pointer = p
	s.hasPointer = true

	if target := s.updateHover(p); target != nil && target.Handlers.HoverMove != nil {
		target.Handlers.HoverMove(p)
	}
}

// PointerLeave ends any hover, as when the pointer leaves the surface.
func (s *Surface) PointerLeave() {
	s.hasPointer = false
	s.setHovered(nil, Point{})
}

// Activate dispatches an activation at p: contained by the overlay, then
// the topmost element, then the surface handlers.
func (s *Surface) Activate(p Point) {
	if s.overlay != nil && s.overlay.PanelContains(p) {
		return
	}

	ev := &Event{Point: p}
	if target := s.HitTest(p); target != nil {
		ev.Target = target
		if target.Handlers.Activate != nil {
			target.Handlers.Activate(ev)
		}
	}
	if ev.Stopped() {
		return
	}

	for _, h := range s.docHandlers {
		h(ev)
	}
}

// HitTest returns the topmost interactive element at p, or nil.
func (s *Surface) HitTest(p Point) *Element {
	for i := len(s.elements) - 1; i >= 0; i-- {
		e := s.elements[i]
		if e.Interactive() && e.Contains(p, s.elapsed, s.minHitRadius) {
			return e
		}
	}
	return nil
}

// updateHover finds the element under p. Points covered by the overlay
// hover nothing.
func (s *Surface) updateHover(p Point) *Element {
	var target *Element
	if s.overlay == nil || !s.overlay.PanelContains(p) {
		target = s.HitTest(p)
	}
	s.setHovered(target, p)
	return target
}

func (s *Surface) setHovered(target *Element, p Point) {
	if target == s.hovered {
		return
	}
	if prev := s.hovered; prev != nil && prev.Handlers.HoverEnd != nil {
		prev.Handlers.HoverEnd()
	}
	s.hovered = target
	if target != nil && target.Handlers.HoverStart != nil {
		target.Handlers.HoverStart(p)
	}
}
