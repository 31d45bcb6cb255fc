package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/litescript/ls-galaxy/internal/interact"
	"github.com/litescript/ls-galaxy/internal/scene"
)

const (
	// panelMargin is the gap between the pinned panel and the canvas edges.
	panelMargin = 16.0
	// panelMaxWidth caps the pinned panel width.
	panelMaxWidth = 360.0
	// tooltipMaxWidth caps the tooltip width.
	tooltipMaxWidth = 320.0
)

// Glyphs
const (
	glyphOrbit     = '·'
	glyphFill      = '█'
	glyphStarDot   = '✦'
	glyphPlanetDot = '●'
)

// wrapLines word-wraps every line to at most width cells.
func wrapLines(lines []string, width int) []string {
	if width < 8 {
		width = 8
	}
	var out []string
	for _, l := range lines {
		out = append(out, strings.Split(ansi.Wordwrap(l, width, ""), "\n")...)
	}
	return out
}

// textWidth returns how many cells of text fit in px pixels inside a box.
func textWidth(px, cellW float64) int {
	return int(px/cellW) - 4
}

// panelBox lays out the pinned panel at the bottom-right corner.
func panelBox(content interact.Content, cols, rows int, cellW, cellH float64) box {
	b := newBox(wrapLines(content.Lines(), textWidth(panelMaxWidth, cellW)))

	marginCols := int(math.Ceil(panelMargin / cellW))
	marginRows := int(math.Ceil(panelMargin / cellH))
	b.col = max(0, cols-marginCols-b.width)
	b.row = max(0, rows-marginRows-b.height)
	return b
}

// tooltipBox places the tooltip at its pixel position, kept on the canvas.
func tooltipBox(tip interact.Tooltip, cols, rows int, cellW, cellH float64) box {
	b := newBox(wrapLines(tip.Content.Lines(), textWidth(tooltipMaxWidth, cellW)))

	b.col = int(math.Floor(tip.Position.X / cellW))
	b.row = int(math.Floor(tip.Position.Y / cellH))
	if b.col+b.width > cols {
		b.col = cols - b.width
	}
	if b.row+b.height > rows {
		b.row = rows - b.height
	}
	b.col = max(0, b.col)
	b.row = max(0, b.row)
	return b
}

// boxRect converts a cell box to surface pixels.
func boxRect(b box, cellW, cellH float64) interact.Rect {
	return interact.Rect{
		X: float64(b.col) * cellW,
		Y: float64(b.row) * cellH,
		W: float64(b.width) * cellW,
		H: float64(b.height) * cellH,
	}
}

// syncPanelBounds reports where the pinned panel is drawn so activations
// inside it are contained.
func syncPanelBounds(ctrl *interact.Controller, cols, rows int, cellW, cellH float64) {
	panel := ctrl.Panel()
	if panel.State != interact.PanelPinned {
		return
	}
	ctrl.SetPanelBounds(boxRect(panelBox(panel.Content, cols, rows, cellW, cellH), cellW, cellH))
}

// Paint draws the surface elements in order, then the tooltip and the
// pinned panel on top.
func Paint(c *Canvas, surface *scene.Surface, ctrl *interact.Controller, theme Theme) {
	elapsed := surface.Elapsed()

	for _, e := range surface.Elements() {
		pos := e.Position(elapsed)
		color := theme.ElementColor(e)

		switch e.Kind {
		case scene.KindOrbit:
			c.DrawEllipse(pos, e.Size/2, glyphOrbit, color)
		case scene.KindStar:
			c.FillDisc(pos, e.Size/2, glyphFill, glyphStarDot, color)
		case scene.KindPlanet:
			c.FillDisc(pos, e.Size/2, glyphFill, glyphPlanetDot, color)
		case scene.KindText:
			c.DrawText(pos, e.Text, color)
		}
	}

	if ctrl == nil {
		return
	}

	if tip := ctrl.Tooltip(); tip.State == interact.TooltipVisible && !tip.Content.IsZero() {
		b := tooltipBox(tip, c.cols, c.rows, c.cellW, c.cellH)
		c.DrawBox(b, theme.Token(TokenBorder), theme.Token(TokenTitle), theme.Token(TokenText))
	}

	if panel := ctrl.Panel(); panel.State == interact.PanelPinned {
		b := panelBox(panel.Content, c.cols, c.rows, c.cellW, c.cellH)
		ctrl.SetPanelBounds(boxRect(b, c.cellW, c.cellH))
		c.DrawBox(b, theme.Token(TokenBorder), theme.Token(TokenTitle), theme.Token(TokenText))
	}
}
