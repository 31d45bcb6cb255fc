package render

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-galaxy/internal/scene"
)

// SceneExport is the serializable representation of a rendered view.
type SceneExport struct {
	Route    string          `json:"route" yaml:"route"`
	Width    float64         `json:"width" yaml:"width"`
	Height   float64         `json:"height" yaml:"height"`
	Elements []ElementExport `json:"elements" yaml:"elements"`
}

// ElementExport is a JSON-friendly element with its resting geometry.
type ElementExport struct {
	ID          string   `json:"id" yaml:"id"`
	Kind        string   `json:"kind" yaml:"kind"`
	Classes     []string `json:"classes" yaml:"classes"`
	X           float64  `json:"x" yaml:"x"`
	Y           float64  `json:"y" yaml:"y"`
	Size        float64  `json:"size" yaml:"size"`
	OffsetX     float64  `json:"offset_x,omitempty" yaml:"offset_x,omitempty"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`
	OrbitRadius float64  `json:"orbit_radius,omitempty" yaml:"orbit_radius,omitempty"`
	PeriodSec   float64  `json:"period_seconds,omitempty" yaml:"period_seconds,omitempty"`
	Text        string   `json:"text,omitempty" yaml:"text,omitempty"`
}

// ExportScene converts the elements of surface to an exportable form.
// Orbiting elements are reported at animation time zero.
func ExportScene(route string, surface *scene.Surface) *SceneExport {
	width, height := surface.Size()
	export := &SceneExport{Route: route, Width: width, Height: height}

	for _, e := range surface.Elements() {
		pos := e.Position(0)
		el := ElementExport{
			ID:      e.ID,
			Kind:    e.Kind.String(),
			Classes: e.Classes,
			X:       pos.X,
			Y:       pos.Y,
			Size:    e.Size,
			OffsetX: e.OffsetX,
			Color:   e.Color,
			Text:    e.Text,
		}
		if e.Orbit != nil {
			el.OrbitRadius = e.Orbit.Radius
			el.PeriodSec = e.Orbit.Period.Seconds()
		}
		export.Elements = append(export.Elements, el)
	}
	return export
}

// WriteJSON writes the export as indented JSON.
func (s *SceneExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteYAML writes the export as YAML.
func (s *SceneExport) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
