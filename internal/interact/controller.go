// Package interact owns the shared hover tooltip and pinned detail panel.
//
// Both pieces of state are explicit state machines. Renderers drive them
// only through Controller methods; painters read them through Tooltip and
// Panel.
package interact

import (
	"fmt"
	"strings"
)

// PointerOffset is added to the pointer position so the tooltip never covers it.
const PointerOffset = 15.0

// Point is a position on the visual surface, in pixels.
type Point struct {
	X, Y float64
}

// Add returns p shifted by dx, dy.
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is an axis-aligned box on the visual surface, in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r. Empty rects contain nothing.
func (r Rect) Contains(p Point) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Field is one labelled line of a description.
type Field struct {
	Label string
	Value string
}

// Content is the description attached to an interactive element.
type Content struct {
	Title  string
	Fields []Field
}

// IsZero reports whether c is empty.
func (c Content) IsZero() bool {
	return c.Title == "" && len(c.Fields) == 0
}

// Lines returns the content as display lines: title first, then "Label: Value".
func (c Content) Lines() []string {
	lines := make([]string, 0, len(c.Fields)+1)
	if c.Title != "" {
		lines = append(lines, c.Title)
	}
	for _, f := range c.Fields {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Label, f.Value))
	}
	return lines
}

// String joins Lines with newlines.
func (c Content) String() string {
	return strings.Join(c.Lines(), "\n")
}

// TooltipState is the transient tooltip state.
type TooltipState int

const (
	TooltipHidden TooltipState = iota
	TooltipVisible
)

func (s TooltipState) String() string {
	if s == TooltipVisible {
		return "visible"
	}
	return "hidden"
}

// PanelState is the pinned panel state.
type PanelState int

const (
	PanelHidden PanelState = iota
	PanelPinned
)

func (s PanelState) String() string {
	if s == PanelPinned {
		return "pinned"
	}
	return "hidden"
}

// Tooltip is a read-only view of the tooltip.
type Tooltip struct {
	State    TooltipState
	Content  Content
	Position Point // top-left corner, already offset from the pointer
}

// Panel is a read-only view of the pinned panel.
type Panel struct {
	State   PanelState
	Content Content
	Bounds  Rect
}

// Controller holds the tooltip and panel state for one view.
// It is not safe for concurrent use; the UI loop is its only caller.
type Controller struct {
	tooltip Tooltip
	panel   Panel
}

// New creates a controller with both machines hidden.
func New() *Controller {
	return &Controller{}
}

// ShowTooltip makes the tooltip visible with content, positioned from the
// pointer at p.
func (c *Controller) ShowTooltip(content Content, p Point) {
	c.tooltip.State = TooltipVisible
	c.tooltip.Content = content
	c.tooltip.Position = p.Add(PointerOffset, PointerOffset)
}

// MoveTooltip tracks the pointer. It never changes visibility.
func (c *Controller) MoveTooltip(p Point) {
	c.tooltip.Position = p.Add(PointerOffset, PointerOffset)
}

// HideTooltip hides the tooltip.
func (c *Controller) HideTooltip() {
	c.tooltip.State = TooltipHidden
}

// Pin shows content in the persistent panel and suppresses the tooltip.
func (c *Controller) Pin(content Content) {
	c.tooltip.State = TooltipHidden
	c.panel.State = PanelPinned
	c.panel.Content = content
}

// Unpin hides the panel.
func (c *Controller) Unpin() {
	c.panel.State = PanelHidden
	c.panel.Bounds = Rect{}
}

// SetPanelBounds records where the panel was drawn.
func (c *Controller) SetPanelBounds(r Rect) {
	c.panel.Bounds = r
}

// PanelContains reports whether p is inside the visible panel.
func (c *Controller) PanelContains(p Point) bool {
	return c.panel.State == PanelPinned && c.panel.Bounds.Contains(p)
}

// DismissOutside handles an activation at p that reached surface scope:
// the panel is hidden unless p is inside it.
func (c *Controller) DismissOutside(p Point) {
	if c.panel.State != PanelPinned || c.panel.Bounds.Contains(p) {
		return
	}
	c.Unpin()
}

// Reset returns both machines to hidden.
func (c *Controller) Reset() {
	c.tooltip = Tooltip{}
	c.panel = Panel{}
}

// Tooltip returns the current tooltip.
func (c *Controller) Tooltip() Tooltip {
	return c.tooltip
}

// Panel returns the current panel.
func (c *Controller) Panel() Panel {
	return c.panel
}
