package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/render"
)

// GalaxyModel shows every catalog system on one map.
type GalaxyModel struct {
	stage
	renderer *render.GalaxyMap

	systems []catalog.StarSystem
	loaded  bool
	err     error
}

// NewGalaxyModel creates an empty galaxy view of cols x rows cells.
func NewGalaxyModel(cols, rows int, cellW, cellH float64, theme Theme) GalaxyModel {
	st := newStage(cols, rows, cellW, cellH, theme)
	return GalaxyModel{
		stage:    st,
		renderer: render.NewGalaxyMap(st.ctrl, st.nav),
	}
}

// SetSize updates the canvas size and re-lays the map out.
func (m GalaxyModel) SetSize(cols, rows int) GalaxyModel {
	if m.resize(cols, rows) && m.loaded {
		m = m.rebuild()
	}
	return m
}

// SetSystems renders a fetched catalog.
func (m GalaxyModel) SetSystems(systems []catalog.StarSystem) GalaxyModel {
	m.systems = systems
	m.loaded = true
	m.err = nil
	return m.rebuild()
}

// SetError records a failed load. Nothing is rendered.
func (m GalaxyModel) SetError(err error) GalaxyModel {
	m.err = err
	m.loaded = true
	m.systems = nil
	m.surface.Clear()
	return m
}

func (m GalaxyModel) rebuild() GalaxyModel {
	m.surface.Clear()
	if err := m.renderer.Render(m.surface, m.systems); err != nil {
		m.err = err
		m.surface.Clear()
	}
	return m
}

// Err returns the last load or render error.
func (m GalaxyModel) Err() error {
	return m.err
}

// Systems returns the rendered catalog.
func (m GalaxyModel) Systems() []catalog.StarSystem {
	return m.systems
}

// Update handles mouse input; col and row are canvas-relative.
func (m GalaxyModel) Update(msg tea.Msg, col, row int) (GalaxyModel, tea.Cmd) {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		return m, m.handleMouse(mouse, col, row)
	}
	return m, nil
}

// View renders the map.
func (m GalaxyModel) View() string {
	if !m.loaded {
		return m.placeholder("Loading galaxy...")
	}
	return m.paint().Render()
}

func (m GalaxyModel) placeholder(text string) string {
	c := NewCanvas(m.cols, m.rows, m.cellW, m.cellH)
	c.DrawText(c.CellCenter(2, 1), text, m.theme.Token(TokenMuted))
	return c.Render()
}
