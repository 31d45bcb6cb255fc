package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-galaxy/internal/scene"
)

// cell is one terminal character of the canvas.
type cell struct {
	ch   rune
	fg   string
	bold bool
}

// Canvas is a character grid addressed in surface pixels. Each cell covers
// cellW x cellH pixels.
type Canvas struct {
	cols, rows   int
	cellW, cellH float64
	grid         [][]cell
}

// NewCanvas creates a blank canvas of cols x rows cells.
func NewCanvas(cols, rows int, cellW, cellH float64) *Canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}
	return &Canvas{cols: cols, rows: rows, cellW: cellW, cellH: cellH, grid: grid}
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// PixelSize returns the canvas size in pixels.
func (c *Canvas) PixelSize() (width, height float64) {
	return float64(c.cols) * c.cellW, float64(c.rows) * c.cellH
}

// ToCell returns the cell containing pixel p.
func (c *Canvas) ToCell(p scene.Point) (col, row int) {
	return int(math.Floor(p.X / c.cellW)), int(math.Floor(p.Y / c.cellH))
}

// CellCenter returns the pixel at the middle of a cell.
func (c *Canvas) CellCenter(col, row int) scene.Point {
	return cellCenter(col, row, c.cellW, c.cellH)
}

func cellCenter(col, row int, cellW, cellH float64) scene.Point {
	return scene.Point{
		X: (float64(col) + 0.5) * cellW,
		Y: (float64(row) + 0.5) * cellH,
	}
}

func (c *Canvas) inside(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// Set writes one cell, ignoring positions off the canvas.
func (c *Canvas) Set(col, row int, ch rune, fg string) {
	if c.inside(col, row) {
		c.grid[row][col] = cell{ch: ch, fg: fg}
	}
}

func (c *Canvas) setBold(col, row int, ch rune, fg string) {
	if c.inside(col, row) {
		c.grid[row][col] = cell{ch: ch, fg: fg, bold: true}
	}
}

// At returns the rune at a cell.
func (c *Canvas) At(col, row int) rune {
	if !c.inside(col, row) {
		return 0
	}
	return c.grid[row][col].ch
}

// DrawEllipse draws a dotted ring of pixel radius r around center. Cells
// already drawn are left alone.
func (c *Canvas) DrawEllipse(center scene.Point, r float64, ch rune, fg string) {
	if r <= 0 {
		return
	}

	// One step per cell of circumference, measured in the narrower axis.
	steps := int(2 * math.Pi * r / math.Min(c.cellW, c.cellH))
	if steps < 16 {
		steps = 16
	}
	if steps > 720 {
		steps = 720
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		col, row := c.ToCell(scene.Point{
			X: center.X + r*math.Cos(theta),
			Y: center.Y + r*math.Sin(theta),
		})
		if c.inside(col, row) && c.grid[row][col].ch == ' ' {
			c.grid[row][col] = cell{ch: ch, fg: fg}
		}
	}
}

// FillDisc fills every cell whose center lies within pixel radius r of
// center. A disc smaller than a cell is drawn as the single glyph dot.
func (c *Canvas) FillDisc(center scene.Point, r float64, fill, dot rune, fg string) {
	// Clip to the canvas before converting so huge radii stay cheap.
	w, h := float64(c.cols)*c.cellW, float64(c.rows)*c.cellH
	minCol, minRow := c.ToCell(scene.Point{X: math.Max(center.X-r, 0), Y: math.Max(center.Y-r, 0)})
	maxCol, maxRow := c.ToCell(scene.Point{X: math.Min(center.X+r, w), Y: math.Min(center.Y+r, h)})
	maxCol, maxRow = min(maxCol, c.cols-1), min(maxRow, c.rows-1)

	filled := 0
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			p := c.CellCenter(col, row)
			if math.Hypot(p.X-center.X, p.Y-center.Y) <= r && c.inside(col, row) {
				c.grid[row][col] = cell{ch: fill, fg: fg}
				filled++
			}
		}
	}

	if filled == 0 {
		col, row := c.ToCell(center)
		c.Set(col, row, dot, fg)
	}
}

// DrawText writes text left to right from the cell containing p.
func (c *Canvas) DrawText(p scene.Point, text string, fg string) {
	col, row := c.ToCell(p)
	for i, r := range []rune(text) {
		c.Set(col+i, row, r, fg)
	}
}

// box is a bordered block of text lines positioned in cells.
type box struct {
	col, row int
	width    int
	height   int
	lines    []string
}

// newBox sizes a box for lines: one border cell and one padding cell on
// each side.
func newBox(lines []string) box {
	w := 0
	for _, l := range lines {
		if lw := lipgloss.Width(l); lw > w {
			w = lw
		}
	}
	return box{width: w + 4, height: len(lines) + 2, lines: lines}
}

// DrawBox draws b with a rounded border. The first line is the title.
func (c *Canvas) DrawBox(b box, borderFg, titleFg, textFg string) {
	border := lipgloss.RoundedBorder()
	top := []rune(border.Top)[0]
	side := []rune(border.Left)[0]

	right := b.col + b.width - 1
	bottom := b.row + b.height - 1

	for col := b.col; col <= right; col++ {
		for row := b.row; row <= bottom; row++ {
			c.Set(col, row, ' ', textFg)
		}
		c.Set(col, b.row, top, borderFg)
		c.Set(col, bottom, []rune(border.Bottom)[0], borderFg)
	}
	for row := b.row; row <= bottom; row++ {
		c.Set(b.col, row, side, borderFg)
		c.Set(right, row, []rune(border.Right)[0], borderFg)
	}
	c.Set(b.col, b.row, []rune(border.TopLeft)[0], borderFg)
	c.Set(right, b.row, []rune(border.TopRight)[0], borderFg)
	c.Set(b.col, bottom, []rune(border.BottomLeft)[0], borderFg)
	c.Set(right, bottom, []rune(border.BottomRight)[0], borderFg)

	for i, line := range b.lines {
		row := b.row + 1 + i
		for j, r := range []rune(line) {
			if i == 0 {
				c.setBold(b.col+2+j, row, r, titleFg)
			} else {
				c.Set(b.col+2+j, row, r, textFg)
			}
		}
	}
}

// String returns the canvas as plain text.
func (c *Canvas) String() string {
	var b strings.Builder
	for y, row := range c.grid {
		for _, cl := range row {
			b.WriteRune(cl.ch)
		}
		if y < len(c.grid)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// Render returns the canvas with colors, styling runs of equal cells once.
func (c *Canvas) Render() string {
	var b strings.Builder

	for y, row := range c.grid {
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.fg == "" && !cur.bold {
				b.WriteString(run.String())
			} else {
				style := lipgloss.NewStyle().Bold(cur.bold)
				if cur.fg != "" {
					style = style.Foreground(lipgloss.Color(cur.fg))
				}
				b.WriteString(style.Render(run.String()))
			}
			run.Reset()
		}

		for x, cl := range row {
			if cl.ch == ' ' {
				cl.fg, cl.bold = "", false
			}
			if x > 0 && (cl.fg != cur.fg || cl.bold != cur.bold) {
				flush()
			}
			cur = cell{fg: cl.fg, bold: cl.bold}
			run.WriteRune(cl.ch)
		}
		flush()

		if y < len(c.grid)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
