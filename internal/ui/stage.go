package ui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-galaxy/internal/interact"
	"github.com/litescript/ls-galaxy/internal/scene"
)

// NavigateMsg requests a full navigation to a route.
type NavigateMsg struct {
	Route string
}

// pendingNav collects navigation requested by element handlers during one
// dispatch, so it can be returned as a command.
type pendingNav struct {
	route string
	set   bool
}

// Navigate implements render.Navigator.
func (n *pendingNav) Navigate(route string) {
	n.route = route
	n.set = true
}

func (n *pendingNav) take() tea.Cmd {
	if !n.set {
		return nil
	}
	route := n.route
	n.route, n.set = "", false
	return func() tea.Msg { return NavigateMsg{Route: route} }
}

// stage is the surface, controller and canvas geometry of one view load.
type stage struct {
	cols, rows   int
	cellW, cellH float64
	theme        Theme

	surface *scene.Surface
	ctrl    *interact.Controller
	nav     *pendingNav
}

func newStage(cols, rows int, cellW, cellH float64, theme Theme) stage {
	ctrl := interact.New()
	surface := scene.NewSurface(float64(cols)*cellW, float64(rows)*cellH, ctrl)
	// The pointer only lands on cell centers, so anything centered in the
	// hovered cell must be in reach.
	surface.SetMinHitRadius(math.Max(scene.DefaultMinHitRadius, math.Hypot(cellW, cellH)/2))
	return stage{
		cols:    cols,
		rows:    rows,
		cellW:   cellW,
		cellH:   cellH,
		theme:   theme,
		surface: surface,
		ctrl:    ctrl,
		nav:     &pendingNav{},
	}
}

// resize changes the canvas size and reports whether it changed.
func (s *stage) resize(cols, rows int) bool {
	if cols == s.cols && rows == s.rows {
		return false
	}
	s.cols, s.rows = cols, rows
	s.surface.Resize(float64(cols)*s.cellW, float64(rows)*s.cellH)
	return true
}

// handleMouse maps a mouse event at canvas cell (col, row) onto the
// surface. Motion moves the pointer and a left press activates.
func (s stage) handleMouse(msg tea.MouseMsg, col, row int) tea.Cmd {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		s.surface.PointerLeave()
		return nil
	}
	p := cellCenter(col, row, s.cellW, s.cellH)

	switch {
	case msg.Action == tea.MouseActionMotion:
		s.surface.PointerMove(p)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		syncPanelBounds(s.ctrl, s.cols, s.rows, s.cellW, s.cellH)
		s.surface.PointerMove(p)
		s.surface.Activate(p)
	}
	return s.nav.take()
}

// paint draws the surface onto a fresh canvas.
func (s stage) paint() *Canvas {
	c := NewCanvas(s.cols, s.rows, s.cellW, s.cellH)
	Paint(c, s.surface, s.ctrl, s.theme)
	return c
}
