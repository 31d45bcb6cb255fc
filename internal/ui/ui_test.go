package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/interact"
	"github.com/litescript/ls-galaxy/internal/render"
	"github.com/litescript/ls-galaxy/internal/state"
)

// Positions sit on cell centers of a 100x37 canvas of 8x16 cells.
func testSystems() []catalog.StarSystem {
	return []catalog.StarSystem{
		{
			ID:       "sol",
			Name:     "Sol",
			Type:     "Yellow Dwarf",
			Position: catalog.Position{X: "404px", Y: "152px"},
			Stars:    []catalog.Star{{Name: "Sun", Type: "Yellow Dwarf", Size: 1, Heat: 5778}},
			Planets: []catalog.Planet{
				{Name: "Earth", Type: "Habitable Planet", Size: 1, Materials: []string{"Iron", "Water"}, Fact: "Home."},
			},
		},
		{
			ID:       "sirius",
			Name:     "Sirius",
			Type:     "Binary Star System",
			Position: catalog.Position{X: "100px", Y: "504px"},
			Stars: []catalog.Star{
				{Name: "Sirius A", Type: "White Main Sequence", Size: 1.71, Heat: 9940},
				{Name: "Sirius B", Type: "White Dwarf", Size: 0.008, Heat: 25200},
			},
		},
	}
}

type failingProvider struct{}

func (failingProvider) Name() string { return "broken" }

func (failingProvider) All(context.Context) ([]catalog.StarSystem, error) {
	return nil, errors.New("connection refused")
}

func (failingProvider) Lookup(context.Context, string) (catalog.StarSystem, error) {
	return catalog.StarSystem{}, errors.New("connection refused")
}

// drain runs cmd and every command batched inside it, returning the
// messages they produce.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// settle feeds msg and every message its commands produce back into m.
func settle(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		var cmd tea.Cmd
		m, cmd = update(t, m, queue[0])
		queue = append(queue[1:], drain(cmd)...)
	}
	return m
}

func startModel(t *testing.T, provider catalog.Provider, route string) Model {
	t.Helper()
	m := New(Options{Provider: provider, Route: route, State: state.NewManager(state.DefaultConfig())})
	return settle(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func click(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row + headerLines, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func hover(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row + headerLines, Action: tea.MouseActionMotion}
}

func TestModelViewBeforeSize(t *testing.T) {
	m := New(Options{Provider: catalog.NewMemoryProvider(testSystems())})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestModelFirstSizeLoadsGalaxy(t *testing.T) {
	provider := catalog.NewMemoryProvider(testSystems())
	m := startModel(t, provider, "")

	if provider.Calls() != 1 {
		t.Errorf("fetches = %d, want 1", provider.Calls())
	}
	if m.Route().View != render.ViewGalaxy {
		t.Errorf("route = %v, want galaxy", m.Route())
	}
	if got := len(m.galaxy.surface.WithClass("star")); got != 2 {
		t.Errorf("stars on map = %d, want 2", got)
	}
	if cols, rows := m.canvasSize(); cols != 100 || rows != 37 {
		t.Errorf("canvas = %dx%d, want 100x37", cols, rows)
	}

	view := m.View()
	if !strings.Contains(view, "Galaxy Map") {
		t.Error("header should name the galaxy map")
	}
	if !strings.Contains(view, "2 systems from memory") {
		t.Errorf("footer missing fetch summary:\n%s", view)
	}
}

func TestModelResizeKeepsSingleFetch(t *testing.T) {
	provider := catalog.NewMemoryProvider(testSystems())
	m := startModel(t, provider, "")

	m = settle(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})

	if provider.Calls() != 1 {
		t.Errorf("resize refetched: %d calls", provider.Calls())
	}
	if m.galaxy.cols != 120 {
		t.Errorf("galaxy cols = %d, want 120", m.galaxy.cols)
	}
}

func TestModelDropsStaleLoad(t *testing.T) {
	m := startModel(t, catalog.NewMemoryProvider(testSystems()), "")
	seq := m.seq

	m, _ = update(t, m, GalaxyLoadedMsg{Seq: seq - 1, Result: catalog.LoadResult{Systems: testSystems()[:1]}})
	if got := len(m.galaxy.Systems()); got != 2 {
		t.Errorf("stale result replaced the map: %d systems", got)
	}

	m, _ = update(t, m, GalaxyLoadedMsg{Seq: seq, Result: catalog.LoadResult{Systems: testSystems()[:1]}})
	if got := len(m.galaxy.Systems()); got != 1 {
		t.Errorf("current result ignored: %d systems", got)
	}
}

func TestModelGalaxyHoverAndNavigate(t *testing.T) {
	provider := catalog.NewMemoryProvider(testSystems())
	m := startModel(t, provider, "")

	m, cmd := update(t, m, hover(50, 9))
	if msgs := drain(cmd); len(msgs) != 0 {
		t.Errorf("hover produced %v", msgs)
	}
	tip := m.galaxy.ctrl.Tooltip()
	if tip.State != interact.TooltipVisible || tip.Content.Title != "Sol" {
		t.Fatalf("tooltip = %+v, want Sol visible", tip)
	}
	if !strings.Contains(m.View(), "Yellow Dwarf") {
		t.Error("tooltip text not drawn")
	}

	m, _ = update(t, m, hover(0, 0))
	if m.galaxy.ctrl.Tooltip().State != interact.TooltipHidden {
		t.Error("tooltip should hide when the pointer leaves the star")
	}

	m, cmd = update(t, m, click(50, 9))
	msgs := drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("click produced %d messages, want 1", len(msgs))
	}
	nav, ok := msgs[0].(NavigateMsg)
	if !ok || nav.Route != render.SystemRoute("sol") {
		t.Fatalf("click message = %#v", msgs[0])
	}

	m = settle(t, m, nav)
	if m.Route().View != render.ViewSystem || m.Route().ID != "sol" {
		t.Fatalf("route = %+v", m.Route())
	}
	if m.system.System().Name != "Sol" {
		t.Errorf("system = %q, want Sol", m.system.System().Name)
	}
	if !strings.Contains(m.View(), "System: Sol") {
		t.Error("header should name the system")
	}
	if provider.Calls() != 2 {
		t.Errorf("fetches = %d, want one per navigation", provider.Calls())
	}
}

func TestModelClickEmptySpace(t *testing.T) {
	m := startModel(t, catalog.NewMemoryProvider(testSystems()), "")

	_, cmd := update(t, m, click(0, 0))
	if msgs := drain(cmd); len(msgs) != 0 {
		t.Errorf("click on empty space produced %v", msgs)
	}
}

func TestModelSystemWithoutID(t *testing.T) {
	provider := catalog.NewMemoryProvider(testSystems())
	m := New(Options{Provider: provider, Route: "system"})

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if cmd != nil {
		if msgs := drain(cmd); len(msgs) != 0 {
			t.Errorf("missing id should not fetch, got %v", msgs)
		}
	}
	if provider.Calls() != 0 {
		t.Errorf("fetches = %d, want 0", provider.Calls())
	}

	view := m.View()
	if !strings.Contains(view, render.MissingIDText) || !strings.Contains(view, render.BackLinkText) {
		t.Errorf("missing id view:\n%s", view)
	}

	// The back link starts two cells in, on the second text line.
	_, cmd = update(t, m, click(3, 2))
	msgs := drain(cmd)
	if len(msgs) != 1 || msgs[0] != (NavigateMsg{Route: render.GalaxyRoute}) {
		t.Errorf("back link produced %v", msgs)
	}
}

func TestModelSystemNotFound(t *testing.T) {
	m := startModel(t, catalog.NewMemoryProvider(testSystems()), render.SystemRoute("vega"))

	if m.system.Err() != nil {
		t.Errorf("not found is not an error: %v", m.system.Err())
	}
	if !strings.Contains(m.View(), render.NotFoundText("vega")) {
		t.Error("not found message missing")
	}
}

func TestModelSystemPinAndDismiss(t *testing.T) {
	m := startModel(t, catalog.NewMemoryProvider(testSystems()), render.SystemRoute("sol"))
	ctrl := m.system.Controller()

	// Earth starts at angle 0, one orbit radius right of the center.
	m, _ = update(t, m, click(62, 18))
	panel := ctrl.Panel()
	if panel.State != interact.PanelPinned || !strings.HasPrefix(panel.Content.Title, "Earth") {
		t.Fatalf("panel = %+v, want Earth pinned", panel)
	}
	if ctrl.Tooltip().State != interact.TooltipHidden {
		t.Error("pinning should hide the tooltip")
	}
	if !strings.Contains(m.View(), "Materials: Iron, Water") {
		t.Error("panel content not drawn")
	}

	b := panelBox(panel.Content, 100, 37, 8, 16)
	m, _ = update(t, m, click(b.col+1, b.row+1))
	if ctrl.Panel().State != interact.PanelPinned {
		t.Error("click inside the panel should keep it pinned")
	}

	m, _ = update(t, m, click(0, 0))
	if ctrl.Panel().State != interact.PanelHidden {
		t.Error("click outside should dismiss the panel")
	}
	_ = m
}

func TestModelPauseAndAnimate(t *testing.T) {
	m := startModel(t, catalog.NewMemoryProvider(testSystems()), render.SystemRoute("sol"))

	m, cmd := update(t, m, AnimTickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.system.surface.Elapsed() != animInterval {
		t.Errorf("elapsed = %v, want %v", m.system.surface.Elapsed(), animInterval)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")})
	if !m.system.Paused() {
		t.Fatal("space should pause")
	}
	m, _ = update(t, m, AnimTickMsg{})
	if m.system.surface.Elapsed() != animInterval {
		t.Error("paused orbits advanced")
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("footer should show paused")
	}
}

func TestModelBackKey(t *testing.T) {
	provider := catalog.NewMemoryProvider(testSystems())
	m := startModel(t, provider, render.SystemRoute("sol"))

	m = settle(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Route().View != render.ViewGalaxy {
		t.Errorf("route = %v, want galaxy", m.Route())
	}

	calls := provider.Calls()
	m = settle(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if provider.Calls() != calls {
		t.Error("back on the galaxy map should do nothing")
	}
}

func TestModelReloadOnCatalogChange(t *testing.T) {
	provider := catalog.NewMemoryProvider(testSystems())
	m := startModel(t, provider, "")

	m = settle(t, m, CatalogChangedMsg{})
	if provider.Calls() != 2 {
		t.Errorf("fetches = %d, want 2", provider.Calls())
	}
	if !strings.Contains(m.View(), "catalog loaded") && !strings.Contains(m.View(), "Catalog changed") {
		t.Errorf("footer status missing:\n%s", m.View())
	}

	m = settle(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if provider.Calls() != 3 {
		t.Errorf("reload key: fetches = %d, want 3", provider.Calls())
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := startModel(t, catalog.NewMemoryProvider(testSystems()), "")
	_, before := m.canvasSize()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !m.help.ShowAll {
		t.Fatal("? should expand help")
	}
	if _, after := m.canvasSize(); after >= before {
		t.Errorf("full help should shrink the canvas: %d -> %d", before, after)
	}
	if _, rows := m.canvasSize(); m.galaxy.rows != rows {
		t.Error("galaxy view not re-laid out after help toggle")
	}
}

func TestModelFetchFailure(t *testing.T) {
	st := state.NewManager(state.DefaultConfig())
	m := New(Options{Provider: failingProvider{}, State: st})
	m = settle(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if m.galaxy.Err() == nil {
		t.Fatal("expected a galaxy error")
	}
	if len(m.galaxy.surface.Elements()) != 0 {
		t.Error("nothing should render on failure")
	}
	view := m.View()
	if !strings.Contains(view, "ERROR") || !strings.Contains(view, "connection refused") {
		t.Errorf("error not shown:\n%s", view)
	}
	if st.LastError() == nil {
		t.Error("state should record the failure")
	}
}

func TestModelQuit(t *testing.T) {
	m := startModel(t, catalog.NewMemoryProvider(testSystems()), "")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelBadInitialRoute(t *testing.T) {
	m := New(Options{Route: "nebula"})
	if m.Route().View != render.ViewGalaxy {
		t.Errorf("bad route should fall back to the galaxy map, got %v", m.Route())
	}
}

func TestRenderGalaxyOnce(t *testing.T) {
	v, err := RenderGalaxyOnce(context.Background(), catalog.NewMemoryProvider(testSystems()), StaticOptions{Cols: 100, Rows: 37})
	if err != nil {
		t.Fatalf("RenderGalaxyOnce: %v", err)
	}
	if got := len(v.Surface.WithClass("star")); got != 2 {
		t.Errorf("stars = %d, want 2", got)
	}
	c := NewCanvas(100, 37, 8, 16)
	if col, row := c.ToCell(v.Surface.Find("sol").Position(0)); col != 50 || row != 9 {
		t.Errorf("sol drawn at (%d, %d), want (50, 9)", col, row)
	}
	if strings.Count(v.Text, "\n") != 36 {
		t.Errorf("text rows = %d, want 37", strings.Count(v.Text, "\n")+1)
	}
}

func TestRenderSystemOnce(t *testing.T) {
	provider := catalog.NewMemoryProvider(testSystems())

	v, err := RenderSystemOnce(context.Background(), provider, "sol", StaticOptions{})
	if err != nil {
		t.Fatalf("RenderSystemOnce: %v", err)
	}
	if v.Surface.Find("planet-0") == nil {
		t.Error("planet missing")
	}
	if !strings.Contains(v.Text, string(glyphOrbit)) {
		t.Error("orbit ring not drawn")
	}

	v, err = RenderSystemOnce(context.Background(), provider, "", StaticOptions{})
	if err != nil {
		t.Fatalf("missing id: %v", err)
	}
	if !strings.Contains(v.Text, render.MissingIDText) {
		t.Error("missing id message not drawn")
	}

	if _, err := RenderSystemOnce(context.Background(), failingProvider{}, "sol", StaticOptions{}); err == nil {
		t.Error("expected an error from a failing provider")
	}
}
