package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/interact"
	"github.com/litescript/ls-galaxy/internal/scene"
)

// formatNumber prints v with the shortest exact representation.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SystemContent is the galaxy map tooltip of a system.
func SystemContent(s catalog.StarSystem) interact.Content {
	return interact.Content{
		Title:  s.Name,
		Fields: []interact.Field{{Label: "Type", Value: s.Type}},
	}
}

// StarContent is the tooltip of a star in the system view.
func StarContent(s catalog.Star) interact.Content {
	return interact.Content{
		Title: fmt.Sprintf("%s (%s)", s.Name, s.Type),
		Fields: []interact.Field{
			{Label: "Size", Value: formatNumber(s.Size) + " Solar Radii"},
			{Label: "Heat", Value: formatNumber(s.Heat) + " K"},
		},
	}
}

// PlanetContent is the tooltip and pinned detail of a planet.
func PlanetContent(p catalog.Planet) interact.Content {
	return interact.Content{
		Title: fmt.Sprintf("%s (%s)", p.Name, p.Type),
		Fields: []interact.Field{
			{Label: "Size", Value: formatNumber(p.Size) + " Earth Radii"},
			{Label: "Materials", Value: strings.Join(p.Materials, ", ")},
			{Label: "Fact", Value: p.Fact},
		},
	}
}

// tooltipHandlers shows content while the pointer is over an element.
func tooltipHandlers(ctrl *interact.Controller, content interact.Content) scene.Handlers {
	return scene.Handlers{
		HoverStart: func(p scene.Point) { ctrl.ShowTooltip(content, p) },
		HoverMove:  ctrl.MoveTooltip,
		HoverEnd:   ctrl.HideTooltip,
	}
}
