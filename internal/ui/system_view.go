package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/interact"
	"github.com/litescript/ls-galaxy/internal/render"
)

// SystemModel shows one system with revolving planets.
type SystemModel struct {
	stage
	renderer *render.SystemView

	id     string
	system catalog.StarSystem
	result error // outcome passed to Apply on the last load
	loaded bool
	err    error
	paused bool
}

// NewSystemModel creates a system view for id. An empty id renders the
// return-to-map message immediately and needs no fetch.
func NewSystemModel(id string, cols, rows int, cellW, cellH float64, theme Theme) SystemModel {
	st := newStage(cols, rows, cellW, cellH, theme)
	m := SystemModel{
		stage:    st,
		renderer: render.NewSystemView(st.ctrl, st.nav, render.WithTextMetrics(cellW, cellH)),
		id:       id,
	}
	if id == "" {
		m.renderer.RenderMissingID(m.surface)
		m.loaded = true
	}
	return m
}

// ID returns the requested system id.
func (m SystemModel) ID() string {
	return m.id
}

// NeedsFetch reports whether the view waits for catalog data.
func (m SystemModel) NeedsFetch() bool {
	return m.id != ""
}

// System returns the rendered system.
func (m SystemModel) System() catalog.StarSystem {
	return m.system
}

// Err returns the last load error.
func (m SystemModel) Err() error {
	return m.err
}

// Controller exposes the interaction state.
func (m SystemModel) Controller() *interact.Controller {
	return m.ctrl
}

// SetSize updates the canvas size and re-centers the system.
func (m SystemModel) SetSize(cols, rows int) SystemModel {
	if m.resize(cols, rows) && m.loaded {
		m = m.rebuild()
	}
	return m
}

// Apply renders the outcome of the lookup.
func (m SystemModel) Apply(sys catalog.StarSystem, err error) SystemModel {
	m.system = sys
	m.result = err
	m.loaded = true
	return m.rebuild()
}

func (m SystemModel) rebuild() SystemModel {
	m.surface.Clear()
	if m.id == "" {
		m.renderer.RenderMissingID(m.surface)
		return m
	}
	m.err = m.renderer.Apply(m.surface, m.id, m.system, m.result)
	return m
}

// Paused reports whether the orbits are frozen.
func (m SystemModel) Paused() bool {
	return m.paused
}

// TogglePause freezes or resumes the orbits.
func (m SystemModel) TogglePause() SystemModel {
	m.paused = !m.paused
	return m
}

// Advance moves the planets forward unless paused.
func (m SystemModel) Advance(d time.Duration) SystemModel {
	if !m.paused {
		m.surface.Advance(d)
	}
	return m
}

// Update handles mouse input; col and row are canvas-relative.
func (m SystemModel) Update(msg tea.Msg, col, row int) (SystemModel, tea.Cmd) {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		return m, m.handleMouse(mouse, col, row)
	}
	return m, nil
}

// View renders the system.
func (m SystemModel) View() string {
	if !m.loaded {
		c := NewCanvas(m.cols, m.rows, m.cellW, m.cellH)
		c.DrawText(c.CellCenter(2, 1), "Loading system "+m.id+"...", m.theme.Token(TokenMuted))
		return c.Render()
	}
	return m.paint().Render()
}
