package ui

import (
	"context"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/interact"
	"github.com/litescript/ls-galaxy/internal/render"
	"github.com/litescript/ls-galaxy/internal/scene"
)

// StaticOptions configures a one-shot rendering outside the TUI.
type StaticOptions struct {
	Cols, Rows   int
	CellW, CellH float64
	Theme        Theme
	Color        bool
}

func (o StaticOptions) withDefaults() StaticOptions {
	if o.Cols <= 0 {
		o.Cols = 100
	}
	if o.Rows <= 0 {
		o.Rows = 40
	}
	if o.CellW <= 0 {
		o.CellW = render.DefaultCharWidth
	}
	if o.CellH <= 0 {
		o.CellH = render.DefaultLineHeight
	}
	if o.Theme.colors == nil {
		o.Theme = DefaultTheme()
	}
	return o
}

// StaticView is a view rendered once onto its own surface.
type StaticView struct {
	Surface *scene.Surface
	Text    string
}

// RenderGalaxyOnce fetches the catalog and draws the galaxy map once.
func RenderGalaxyOnce(ctx context.Context, provider catalog.Provider, opts StaticOptions) (StaticView, error) {
	opts = opts.withDefaults()
	ctrl := interact.New()
	surface := scene.NewSurface(float64(opts.Cols)*opts.CellW, float64(opts.Rows)*opts.CellH, ctrl)

	g := render.NewGalaxyMap(ctrl, render.NavigatorFunc(func(string) {}))
	if err := g.Load(ctx, provider, surface); err != nil {
		return StaticView{Surface: surface}, err
	}
	return StaticView{Surface: surface, Text: paintStatic(surface, ctrl, opts)}, nil
}

// RenderSystemOnce draws the system view for id once. An empty id draws
// the return-to-map message without fetching.
func RenderSystemOnce(ctx context.Context, provider catalog.Provider, id string, opts StaticOptions) (StaticView, error) {
	opts = opts.withDefaults()
	ctrl := interact.New()
	surface := scene.NewSurface(float64(opts.Cols)*opts.CellW, float64(opts.Rows)*opts.CellH, ctrl)

	v := render.NewSystemView(ctrl, render.NavigatorFunc(func(string) {}), render.WithTextMetrics(opts.CellW, opts.CellH))
	if err := v.Load(ctx, provider, surface, id); err != nil {
		return StaticView{Surface: surface}, err
	}
	return StaticView{Surface: surface, Text: paintStatic(surface, ctrl, opts)}, nil
}

func paintStatic(surface *scene.Surface, ctrl *interact.Controller, opts StaticOptions) string {
	c := NewCanvas(opts.Cols, opts.Rows, opts.CellW, opts.CellH)
	Paint(c, surface, ctrl, opts.Theme)
	if opts.Color {
		return c.Render()
	}
	return c.String()
}
