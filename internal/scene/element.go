// Package scene is the visual surface the renderers draw onto: positioned
// elements tagged with style classes, plus pointer and activation dispatch.
package scene

import (
	"math"
	"time"

	"github.com/litescript/ls-galaxy/internal/interact"
	"github.com/litescript/ls-galaxy/internal/layout"
)

// Structural class names of the style contract.
const (
	ClassStar       = "star"
	ClassPlanet     = "planet"
	ClassOrbit      = "orbit"
	ClassSystemBody = "system-body"
	ClassMessage    = "message"
	ClassLink       = "link"
)

// Kind identifies how an element is drawn.
type Kind int

const (
	KindStar Kind = iota
	KindPlanet
	KindOrbit
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindOrbit:
		return "orbit"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Orbit makes an element revolve around a center.
type Orbit struct {
	Center Point
	Radius float64
	Period time.Duration
}

// Point is a surface position in pixels.
type Point = interact.Point

// Event is an activation travelling from an element up to the surface.
type Event struct {
	Point   Point
	Target  *Element
	stopped bool
}

// StopPropagation keeps the event from reaching surface-level handlers.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Handlers are the interaction callbacks a renderer attaches to an element.
// Any of them may be nil.
type Handlers struct {
	HoverStart func(p Point)
	HoverMove  func(p Point)
	HoverEnd   func()
	Activate   func(ev *Event)
}

// Element is one visual object on the surface.
type Element struct {
	ID      string
	Kind    Kind
	Classes []string
	Attrs   map[string]string

	Center  Point   // resting center
	Size    float64 // width and height
	OffsetX float64 // horizontal translation applied after placement
	Color   string  // explicit fill color; empty means styled by class
	Orbit   *Orbit  // when set, Center is ignored and the element revolves
	Text    string  // for KindText

	Handlers Handlers
}

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Attr returns the named attribute.
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// Interactive reports whether the element reacts to the pointer.
func (e *Element) Interactive() bool {
	h := e.Handlers
	return h.HoverStart != nil || h.HoverMove != nil || h.HoverEnd != nil || h.Activate != nil
}

// Position returns the element center after elapsed animation time.
func (e *Element) Position(elapsed time.Duration) Point {
	if e.Orbit == nil || e.Orbit.Period <= 0 {
		return e.Center.Add(e.OffsetX, 0)
	}
	theta := layout.OrbitAngle(e.Orbit.Period, elapsed)
	return Point{
		X: e.Orbit.Center.X + e.Orbit.Radius*math.Cos(theta) + e.OffsetX,
		Y: e.Orbit.Center.Y + e.Orbit.Radius*math.Sin(theta),
	}
}

// Contains reports whether p hits the element at elapsed time, treating
// the element as a disc no smaller than minRadius.
func (e *Element) Contains(p Point, elapsed time.Duration, minRadius float64) bool {
	if e.Kind == KindOrbit {
		return false
	}
	c := e.Position(elapsed)
	r := math.Max(e.Size/2, minRadius)
	if e.Kind == KindText {
		// Text is laid out left to right from its center-left anchor.
		return p.X >= c.X && p.X < c.X+e.Size && math.Abs(p.Y-c.Y) <= minRadius
	}
	return math.Hypot(p.X-c.X, p.Y-c.Y) <= r
}
