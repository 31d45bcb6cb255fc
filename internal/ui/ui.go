// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/logging"
	"github.com/litescript/ls-galaxy/internal/render"
	"github.com/litescript/ls-galaxy/internal/state"
	"github.com/litescript/ls-galaxy/internal/version"
)

// animInterval is the orbit animation step.
const animInterval = 80 * time.Millisecond

// headerLines is the height of the title bar above the canvas.
const headerLines = 1

// Msg types for Bubble Tea
type (
	// AnimTickMsg triggers orbit animation updates.
	AnimTickMsg time.Time

	// GalaxyLoadedMsg carries the catalog fetched for a galaxy view load.
	GalaxyLoadedMsg struct {
		Seq    int
		Result catalog.LoadResult
	}

	// SystemLoadedMsg carries the catalog fetched for a system view load.
	SystemLoadedMsg struct {
		Seq    int
		ID     string
		Result catalog.LoadResult
	}

	// CatalogChangedMsg signals that the catalog source changed on disk.
	CatalogChangedMsg struct{}
)

// Options configures the root model.
type Options struct {
	Context    context.Context
	Provider   catalog.Provider
	State      *state.Manager
	Logger     *logging.Logger
	Theme      Theme
	CellWidth  float64
	CellHeight float64
	Route      string // initial route; empty means the galaxy map
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	ctx      context.Context
	provider catalog.Provider
	state    *state.Manager
	logger   *logging.Logger
	theme    Theme
	keys     KeyMap
	help     help.Model

	cellW, cellH float64

	// UI state
	route     render.Route
	seq       int // current view load; older results are dropped
	width     int
	height    int
	ready     bool
	statusMsg string

	// Sub-models, one of which is active per route
	galaxy GalaxyModel
	system SystemModel
}

// New creates a new root UI model.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.State == nil {
		opts.State = state.NewManager(state.DefaultConfig())
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = render.DefaultCharWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = render.DefaultLineHeight
	}
	if opts.Theme.colors == nil {
		opts.Theme = DefaultTheme()
	}

	route, err := render.ParseRoute(opts.Route)
	if err != nil {
		opts.Logger.Warn("Ignoring initial route: %v", err)
		route = render.Route{View: render.ViewGalaxy}
	}

	h := help.New()
	h.Styles.ShortKey = opts.Theme.Style(TokenAccent)
	h.Styles.ShortDesc = opts.Theme.Style(TokenMuted)
	h.Styles.FullKey = opts.Theme.Style(TokenAccent)
	h.Styles.FullDesc = opts.Theme.Style(TokenMuted)

	return Model{
		ctx:      opts.Context,
		provider: opts.Provider,
		state:    opts.State,
		logger:   opts.Logger.Named("ui"),
		theme:    opts.Theme,
		keys:     DefaultKeyMap(),
		help:     h,
		cellW:    opts.CellWidth,
		cellH:    opts.CellHeight,
		route:    route,
	}
}

// Route returns the active route.
func (m Model) Route() render.Route {
	return m.route
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return animTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			if m.route.View != render.ViewGalaxy {
				cmds = append(cmds, m.navigate(render.GalaxyRoute))
			}
		case key.Matches(msg, m.keys.Pause):
			if m.route.View == render.ViewSystem {
				m.system = m.system.TogglePause()
			}
		case key.Matches(msg, m.keys.Reload):
			m.statusMsg = "Reloading..."
			cmds = append(cmds, m.navigate(m.route.String()))
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layoutViews()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.ready = true
			cmds = append(cmds, m.navigate(m.route.String()))
		} else {
			m.layoutViews()
		}

	case tea.MouseMsg:
		col, row := msg.X, msg.Y-headerLines
		var cmd tea.Cmd
		if m.route.View == render.ViewSystem {
			m.system, cmd = m.system.Update(msg, col, row)
		} else {
			m.galaxy, cmd = m.galaxy.Update(msg, col, row)
		}
		cmds = append(cmds, cmd)

	case NavigateMsg:
		cmds = append(cmds, m.navigate(msg.Route))

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		if m.route.View == render.ViewSystem {
			m.system = m.system.Advance(animInterval)
		}

	case GalaxyLoadedMsg:
		if msg.Seq != m.seq {
			m.logger.Debug("Dropping stale galaxy load %d (current %d)", msg.Seq, m.seq)
			break
		}
		m.record(msg.Result)
		if msg.Result.Error != nil {
			m.galaxy = m.galaxy.SetError(msg.Result.Error)
			break
		}
		m.galaxy = m.galaxy.SetSystems(msg.Result.Systems)
		if err := m.galaxy.Err(); err != nil {
			m.logger.Error("Render galaxy: %v", err)
		}

	case SystemLoadedMsg:
		if msg.Seq != m.seq {
			m.logger.Debug("Dropping stale system load %d (current %d)", msg.Seq, m.seq)
			break
		}
		m.record(msg.Result)
		var sys catalog.StarSystem
		err := msg.Result.Error
		if err == nil {
			sys, err = catalog.Find(msg.Result.Systems, msg.ID)
		}
		m.system = m.system.Apply(sys, err)
		if errors.Is(err, catalog.ErrSystemNotFound) {
			m.logger.Warn("System %q not found in %s", msg.ID, m.sourceName())
		}

	case CatalogChangedMsg:
		m.logger.Info("Catalog changed, reloading %s", m.route)
		m.statusMsg = "Catalog changed on disk"
		cmds = append(cmds, m.navigate(m.route.String()))
	}

	return m, tea.Batch(cmds...)
}

// navigate performs a full view reload: a new surface and controller and
// at most one fetch.
func (m *Model) navigate(raw string) tea.Cmd {
	route, err := render.ParseRoute(raw)
	if err != nil {
		m.logger.Warn("Navigation: %v", err)
		return nil
	}
	m.route = route
	m.seq++
	cols, rows := m.canvasSize()

	m.logger.Debug("Navigate to %s (load %d)", route, m.seq)

	switch route.View {
	case render.ViewSystem:
		m.system = NewSystemModel(route.ID, cols, rows, m.cellW, m.cellH, m.theme)
		if !m.system.NeedsFetch() {
			return nil
		}
		return m.fetchSystem(m.seq, route.ID)
	default:
		m.galaxy = NewGalaxyModel(cols, rows, m.cellW, m.cellH, m.theme)
		return m.fetchGalaxy(m.seq)
	}
}

func (m Model) fetchGalaxy(seq int) tea.Cmd {
	if m.provider == nil {
		return nil
	}
	ctx, provider := m.ctx, m.provider
	return func() tea.Msg {
		return GalaxyLoadedMsg{Seq: seq, Result: catalog.Load(ctx, provider)}
	}
}

func (m Model) fetchSystem(seq int, id string) tea.Cmd {
	if m.provider == nil {
		return nil
	}
	ctx, provider := m.ctx, m.provider
	return func() tea.Msg {
		return SystemLoadedMsg{Seq: seq, ID: id, Result: catalog.Load(ctx, provider)}
	}
}

// record stores a fetch outcome and logs failures.
func (m *Model) record(res catalog.LoadResult) {
	m.state.Update(res.Systems, res.Duration, res.Error)
	if res.Error != nil {
		m.logger.Error("Fetch failed: %v", res.Error)
		m.statusMsg = ""
		return
	}
	m.logger.Debug("Fetch complete: %d systems in %v", len(res.Systems), res.Duration)
	if events := m.state.RecentEvents(1); len(events) > 0 {
		m.statusMsg = events[0].Describe()
	}
}

func (m Model) sourceName() string {
	if m.provider == nil {
		return "no catalog"
	}
	return m.provider.Name()
}

// canvasSize returns the canvas size in cells.
func (m Model) canvasSize() (cols, rows int) {
	rows = m.height - headerLines - lipgloss.Height(m.renderFooter())
	return max(m.width, 0), max(rows, 0)
}

func (m *Model) layoutViews() {
	cols, rows := m.canvasSize()
	if m.route.View == render.ViewSystem {
		m.system = m.system.SetSize(cols, rows)
	} else {
		m.galaxy = m.galaxy.SetSize(cols, rows)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	if m.route.View == render.ViewSystem {
		content = m.system.View()
	} else {
		content = m.galaxy.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Token(TokenAccent))).Bold(true)
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Token(TokenTitle))).Bold(true)
	dimStyle := m.theme.Style(TokenMuted)

	var where string
	switch {
	case m.route.View == render.ViewGalaxy:
		where = "Galaxy Map"
	case m.route.ID == "":
		where = "System"
	case m.system.System().Name != "":
		where = "System: " + m.system.System().Name
	default:
		where = "System: " + m.route.ID
	}

	return " " + titleStyle.Render("✦ ls-galaxy") + dimStyle.Render(" v"+version.Version+"  ") + activeStyle.Render("▶ "+where)
}

func (m Model) renderFooter() string {
	dimStyle := m.theme.Style(TokenMuted)
	errorStyle := m.theme.Style(TokenError)
	accentStyle := m.theme.Style(TokenAccent)

	snap := m.state.Snapshot()

	var parts []string
	switch {
	case m.viewErr() != nil:
		parts = append(parts, errorStyle.Render("ERROR: "+m.viewErr().Error()))
	case !snap.LastFetch.IsZero():
		parts = append(parts, dimStyle.Render(fmt.Sprintf("%d systems from %s (%s)",
			len(snap.Systems), m.sourceName(), snap.FetchDuration.Round(time.Millisecond))))
	default:
		parts = append(parts, dimStyle.Render(m.sourceName()))
	}

	if m.route.View == render.ViewSystem && m.system.Paused() {
		parts = append(parts, accentStyle.Render("paused"))
	}
	if m.statusMsg != "" {
		parts = append(parts, dimStyle.Render(m.statusMsg))
	}

	status := " " + strings.Join(parts, dimStyle.Render("  |  "))
	return status + "\n " + m.help.View(m.keys)
}

func (m Model) viewErr() error {
	if m.route.View == render.ViewSystem {
		return m.system.Err()
	}
	return m.galaxy.Err()
}

func animTickCmd() tea.Cmd {
	return tea.Tick(animInterval, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
