package render

import (
	"context"
	"fmt"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/interact"
	"github.com/litescript/ls-galaxy/internal/layout"
	"github.com/litescript/ls-galaxy/internal/scene"
)

// MapStarSize is the size of a system marker on the galaxy map, in pixels.
const MapStarSize = 12.0

// GalaxyMap renders the overview map: one marker per system.
type GalaxyMap struct {
	ctrl *interact.Controller
	nav  Navigator
}

// NewGalaxyMap creates a galaxy renderer sharing ctrl for tooltips.
func NewGalaxyMap(ctrl *interact.Controller, nav Navigator) *GalaxyMap {
	return &GalaxyMap{ctrl: ctrl, nav: nav}
}

// Render adds one element per system to surface. Positions are resolved
// against the surface size; if any fails nothing is added.
func (g *GalaxyMap) Render(surface *scene.Surface, systems []catalog.StarSystem) error {
	width, height := surface.Size()

	centers := make([]scene.Point, len(systems))
	for i, sys := range systems {
		x, err := sys.Position.X.Resolve(width)
		if err != nil {
			return fmt.Errorf("position of %q: %w", sys.ID, err)
		}
		y, err := sys.Position.Y.Resolve(height)
		if err != nil {
			return fmt.Errorf("position of %q: %w", sys.ID, err)
		}
		centers[i] = scene.Point{X: x, Y: y}
	}

	for i, sys := range systems {
		handlers := tooltipHandlers(g.ctrl, SystemContent(sys))
		route := SystemRoute(sys.ID)
		handlers.Activate = func(*scene.Event) {
			g.nav.Navigate(route)
		}

		surface.Add(&scene.Element{
			ID:       sys.ID,
			Kind:     scene.KindStar,
			Classes:  []string{scene.ClassStar, layout.TypeToClass(sys.Type)},
			Attrs:    map[string]string{"id": sys.ID},
			Center:   centers[i],
			Size:     MapStarSize,
			Handlers: handlers,
		})
	}
	return nil
}

// Load performs one fetch-then-render sequence.
func (g *GalaxyMap) Load(ctx context.Context, provider catalog.Provider, surface *scene.Surface) error {
	systems, err := provider.All(ctx)
	if err != nil {
		return fmt.Errorf("load galaxy from %s: %w", provider.Name(), err)
	}
	return g.Render(surface, systems)
}
