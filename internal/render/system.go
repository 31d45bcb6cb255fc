package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/interact"
	"github.com/litescript/ls-galaxy/internal/layout"
	"github.com/litescript/ls-galaxy/internal/scene"
)

// Message texts of the system view.
const (
	MissingIDText = "No system selected."
	BackLinkText  = "Go back to the map"
)

// Default text metrics, one terminal cell.
const (
	DefaultCharWidth  = 8.0
	DefaultLineHeight = 16.0
)

// NotFoundText returns the message shown for an unknown id.
func NotFoundText(id string) string {
	return fmt.Sprintf("System with ID %s not found.", id)
}

// SystemOption configures a SystemView.
type SystemOption func(*SystemView)

// WithTextMetrics sets the pixel width of one character and the height of
// one text line, used to place messages.
func WithTextMetrics(charWidth, lineHeight float64) SystemOption {
	return func(v *SystemView) {
		if charWidth > 0 {
			v.charWidth = charWidth
		}
		if lineHeight > 0 {
			v.lineHeight = lineHeight
		}
	}
}

// SystemView renders one system as stars with planets on concentric orbits.
type SystemView struct {
	ctrl       *interact.Controller
	nav        Navigator
	charWidth  float64
	lineHeight float64
}

// NewSystemView creates a system renderer sharing ctrl for tooltips and
// the pinned panel.
func NewSystemView(ctrl *interact.Controller, nav Navigator, opts ...SystemOption) *SystemView {
	v := &SystemView{
		ctrl:       ctrl,
		nav:        nav,
		charWidth:  DefaultCharWidth,
		lineHeight: DefaultLineHeight,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Render draws the stars of sys at the surface center and one orbit guide
// plus one revolving planet per planet, innermost first.
func (v *SystemView) Render(surface *scene.Surface, sys catalog.StarSystem) {
	center := surface.Center()

	for i, star := range sys.Stars {
		size := layout.StarVisualSize(star.Size)
		var offset float64
		if sys.IsBinary() {
			offset = layout.BinaryOffset(i, len(sys.Stars), size)
		}
		surface.Add(&scene.Element{
			ID:       fmt.Sprintf("star-%d", i),
			Kind:     scene.KindStar,
			Classes:  []string{scene.ClassSystemBody, scene.ClassStar, layout.TypeToClass(star.Type)},
			Center:   center,
			Size:     size,
			OffsetX:  offset,
			Handlers: tooltipHandlers(v.ctrl, StarContent(star)),
		})
	}

	for i, planet := range sys.Planets {
		radius := layout.OrbitRadius(i)
		surface.Add(&scene.Element{
			ID:      fmt.Sprintf("orbit-%d", i),
			Kind:    scene.KindOrbit,
			Classes: []string{scene.ClassOrbit},
			Center:  center,
			Size:    2 * radius,
		})

		content := PlanetContent(planet)
		handlers := tooltipHandlers(v.ctrl, content)
		handlers.Activate = func(ev *scene.Event) {
			ev.StopPropagation()
			v.ctrl.Pin(content)
		}

		surface.Add(&scene.Element{
			ID:      fmt.Sprintf("planet-%d", i),
			Kind:    scene.KindPlanet,
			Classes: []string{scene.ClassSystemBody, scene.ClassPlanet, layout.TypeToClass(planet.Type)},
			Attrs:   map[string]string{"name": planet.Name},
			Size:    layout.PlanetVisualSize(planet.Size),
			Color:   layout.PlanetColor(planet.Type),
			Orbit: &scene.Orbit{
				Center: center,
				Radius: radius,
				Period: layout.OrbitPeriod(i),
			},
			Handlers: handlers,
		})
	}

	surface.OnActivate(func(ev *scene.Event) {
		v.ctrl.DismissOutside(ev.Point)
	})
}

// RenderMissingID shows the return-to-map message.
func (v *SystemView) RenderMissingID(surface *scene.Surface) {
	v.addText(surface, "message", 0, MissingIDText, scene.Handlers{}, scene.ClassMessage)
	v.addText(surface, "back-link", 1, BackLinkText, scene.Handlers{
		Activate: func(*scene.Event) { v.nav.Navigate(GalaxyRoute) },
	}, scene.ClassLink)
}

// RenderNotFound shows the not-found message for id.
func (v *SystemView) RenderNotFound(surface *scene.Surface, id string) {
	v.addText(surface, "message", 0, NotFoundText(id), scene.Handlers{}, scene.ClassMessage)
}

// Apply renders the outcome of looking up id: the system, the not-found
// message, or nothing when the lookup failed. Only lookup failures other
// than an unknown id are returned.
func (v *SystemView) Apply(surface *scene.Surface, id string, sys catalog.StarSystem, err error) error {
	switch {
	case errors.Is(err, catalog.ErrSystemNotFound):
		v.RenderNotFound(surface, id)
		return nil
	case err != nil:
		return fmt.Errorf("load system %q: %w", id, err)
	}
	v.Render(surface, sys)
	return nil
}

// Load performs one fetch-then-render sequence for id. Without an id it
// renders the return-to-map message and fetches nothing.
func (v *SystemView) Load(ctx context.Context, provider catalog.Provider, surface *scene.Surface, id string) error {
	if id == "" {
		v.RenderMissingID(surface)
		return nil
	}
	sys, err := provider.Lookup(ctx, id)
	return v.Apply(surface, id, sys, err)
}

// addText places a single-line text element on the given line.
func (v *SystemView) addText(surface *scene.Surface, id string, line int, text string, h scene.Handlers, class string) {
	surface.Add(&scene.Element{
		ID:      id,
		Kind:    scene.KindText,
		Classes: []string{class},
		Center: scene.Point{
			X: 2 * v.charWidth,
			Y: (float64(line) + 1.5) * v.lineHeight,
		},
		Size:     float64(len([]rune(text))) * v.charWidth,
		Text:     text,
		Handlers: h,
	})
}
