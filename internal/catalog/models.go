// Package catalog provides the star-system data model and the providers
// that load it.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// StarSystem is one catalog record.
type StarSystem struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Position Position `json:"position" yaml:"position"`
	Stars    []Star   `json:"star_data" yaml:"star_data"`
	Planets  []Planet `json:"planets" yaml:"planets"` // innermost orbit first
}

// Position places a system on the galaxy map.
type Position struct {
	X Length `json:"x" yaml:"x"`
	Y Length `json:"y" yaml:"y"`
}

// Star is a single star of a system.
type Star struct {
	Name string  `json:"name" yaml:"name"`
	Type string  `json:"type" yaml:"type"`
	Size float64 `json:"size" yaml:"size"` // solar radii
	Heat float64 `json:"heat" yaml:"heat"` // kelvin
}

// Planet is one orbiting body of a system.
type Planet struct {
	Name      string   `json:"name" yaml:"name"`
	Type      string   `json:"type" yaml:"type"`
	Size      float64  `json:"size" yaml:"size"` // Earth radii
	Materials []string `json:"materials" yaml:"materials"`
	Fact      string   `json:"fact" yaml:"fact"`
}

// IsBinary reports whether the system has two stars.
func (s StarSystem) IsBinary() bool {
	return len(s.Stars) == 2
}

// Length is a CSS-style length such as "42%" or "120px".
type Length string

// Resolve converts the length to pixels. Percentages are taken of extent;
// "px" values and bare numbers are already pixels.
func (l Length) Resolve(extent float64) (float64, error) {
	s := strings.TrimSpace(string(l))
	if s == "" {
		return 0, fmt.Errorf("empty length")
	}

	switch {
	case strings.HasSuffix(s, "%"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
		if err != nil {
			return 0, fmt.Errorf("parse percentage %q: %w", s, err)
		}
		return v / 100 * extent, nil
	case strings.HasSuffix(s, "px"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "px")), 64)
		if err != nil {
			return 0, fmt.Errorf("parse pixels %q: %w", s, err)
		}
		return v, nil
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("unsupported length %q", s)
		}
		return v, nil
	}
}

// FindByID returns the system with the given id.
func FindByID(systems []StarSystem, id string) (StarSystem, bool) {
	for _, s := range systems {
		if s.ID == id {
			return s, true
		}
	}
	return StarSystem{}, false
}
